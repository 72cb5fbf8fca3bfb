package form

import (
	"github.com/MrJamesThe3rd/pocketbook/internal/category"
)

const DefaultColor = "#888888"

// CategoryForm is the editable state of the add/edit category screen.
type CategoryForm struct {
	Name  string
	Type  category.Type
	Color string
}

func NewCategoryForm() *CategoryForm {
	return &CategoryForm{Type: category.TypeExpense, Color: DefaultColor}
}

func EditCategoryForm(c *category.Category) *CategoryForm {
	return &CategoryForm{Name: c.Name, Type: c.Type, Color: c.Color}
}

func (f *CategoryForm) Params() category.CreateParams {
	return category.CreateParams{Name: f.Name, Type: f.Type, Color: f.Color}
}

func (f *CategoryForm) Validate() error {
	return f.Params().Validate()
}

// UpdateParams sends every field; the service merges them onto the stored row.
func (f *CategoryForm) UpdateParams() category.UpdateParams {
	return category.UpdateParams{Name: &f.Name, Type: &f.Type, Color: &f.Color}
}
