package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/bank-client-ledger/internal/ledger"
	"github.com/sheikh-saqib/bank-client-ledger/internal/models"
	"github.com/sheikh-saqib/bank-client-ledger/internal/storage"
)

type createClientRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Balance decimal.Decimal `json:"balance"`
}

type transferRequest struct {
	FromEmail string          `json:"from_email"`
	ToEmail   string          `json:"to_email"`
	Amount    decimal.Decimal `json:"amount"`
}

type withdrawRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

// ClientHandler serves the ledger over HTTP.
type ClientHandler struct {
	Ledger *ledger.Ledger
	Logger *zap.SugaredLogger
}

func NewClientHandler(l *ledger.Ledger, logger *zap.SugaredLogger) *ClientHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ClientHandler{Ledger: l, Logger: logger}
}

// Router builds the complete route table.
func (h *ClientHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	h.RegisterRoutes(r)
	return r
}

func (h *ClientHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/clients", h.List).Methods(http.MethodGet)
	r.HandleFunc("/clients", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/clients/{email}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/clients/{email}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/transfers", h.Transfer).Methods(http.MethodPost)
	r.HandleFunc("/withdrawals", h.Withdraw).Methods(http.MethodPost)
}

func (h *ClientHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("invalid JSON", "error", err)
		writeErr(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}

	c := models.NewClient(req.Name, req.Email, req.Balance)
	if err := h.Ledger.Save(r.Context(), c); err != nil {
		h.fail(w, "save client", err)
		return
	}
	h.Logger.Infow("client created", "email", c.Email)
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Ledger.List(r.Context())
	if err != nil {
		h.fail(w, "list clients", err)
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	c, err := h.Ledger.FindByEmail(r.Context(), email)
	if err != nil {
		h.fail(w, "find client", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete resolves the stored client by email and runs the ledger's delete checks on it.
//
// For a zero-balance client the record IS removed, yet the response is
// 404 with "cannot delete client with incorrect email": ledger.Delete always
// ends with ErrIncorrectEmail once the funds and email checks pass. A 404 here
// therefore does not mean nothing happened; GET the client to see whether it is gone.
// A client holding funds gets 409 and stays stored.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	c, err := h.Ledger.FindByEmail(r.Context(), email)
	if err != nil {
		h.fail(w, "find client", err)
		return
	}
	if err := h.Ledger.Delete(r.Context(), c); err != nil {
		h.fail(w, "delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("invalid JSON", "error", err)
		writeErr(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}
	if err := h.Ledger.Transfer(r.Context(), req.FromEmail, req.ToEmail, req.Amount); err != nil {
		h.fail(w, "transfer", err)
		return
	}
	h.Logger.Infow("transfer completed", "from", req.FromEmail, "to", req.ToEmail, "amount", req.Amount.String())
	writeJSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

func (h *ClientHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("invalid JSON", "error", err)
		writeErr(w, errors.New("invalid request body"), http.StatusBadRequest)
		return
	}
	if err := h.Ledger.Withdraw(r.Context(), req.Email, req.Amount); err != nil {
		h.fail(w, "withdraw", err)
		return
	}
	h.Logger.Infow("withdrawal completed", "email", req.Email, "amount", req.Amount)
	writeJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}

// fail maps ledger and storage errors onto HTTP status codes.
func (h *ClientHandler) fail(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.Logger.Errorw(op+" failed", "error", err)
	} else {
		h.Logger.Debugw(op+" rejected", "error", err)
	}
	writeErr(w, err, code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrCannotDeleteWithFunds),
		errors.Is(err, ledger.ErrCannotDeleteWithEmptyEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error, code int) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
