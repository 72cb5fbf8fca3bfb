package importcsv

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketbook/internal/http/respond"
	httptransaction "github.com/MrJamesThe3rd/pocketbook/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/transaction"
)

const maxUploadSize = 10 << 20

// RowParser turns an uploaded file into import rows.
type RowParser interface {
	Parse(r io.Reader) ([]transaction.ImportRow, error)
}

type Handler struct {
	parser RowParser
	txSvc  *transaction.Service
}

func NewHandler(parser RowParser, txSvc *transaction.Service) *Handler {
	return &Handler{
		parser: parser,
		txSvc:  txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported     int                                   `json:"imported"`
	Transactions []httptransaction.TransactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	txs, err := h.txSvc.Import(r.Context(), rows)
	if err != nil {
		var rowErr *transaction.RowError
		if errors.As(err, &rowErr) {
			respond.Error(w, http.StatusBadRequest, rowErr.Error())
			return
		}

		respond.Internal(w, r, "Failed to import transactions", err)

		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(txs),
		Transactions: httptransaction.ToResponseList(txs),
	})
}

var _ RowParser = (*importer.Parser)(nil)
