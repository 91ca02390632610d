package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ehimavote/evote/internal/common"
	"github.com/ehimavote/evote/internal/server/documents"
	"github.com/ehimavote/evote/internal/server/users"
	"github.com/go-chi/chi/v5"
)

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	Kind         string `json:"kind"`
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Registered   bool   `json:"registered,omitempty"`
}

type documentBody struct {
	Name       string                     `json:"name,omitempty"`
	Fields     map[string]json.RawMessage `json:"fields"`
	CreateTime string                     `json:"createTime,omitempty"`
	UpdateTime string                     `json:"updateTime,omitempty"`
}

// Accounts serves POST /v1/accounts:signUp and /v1/accounts:signInWithPassword.
func (s *HTTPServer) Accounts(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "INVALID_JSON")
		return
	}

	var (
		sess *users.Session
		err  error
		kind string
	)
	switch method {
	case "accounts:signUp":
		kind = "identitytoolkit#SignupNewUserResponse"
		sess, err = s.users.SignUp(r.Context(), req.Email, req.Password)
	case "accounts:signInWithPassword":
		kind = "identitytoolkit#VerifyPasswordResponse"
		sess, err = s.users.SignIn(r.Context(), req.Email, req.Password)
	default:
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Requested entity was not found.")
		return
	}

	if err != nil {
		if users.IsClientError(err) {
			s.logger.Info(r.Context(), "account request rejected", "method", method, "code", err.Error())
			writeError(w, http.StatusBadRequest, "", err.Error())
			return
		}
		s.logger.Error(r.Context(), "account request failed", "method", method, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		Kind:         kind,
		IDToken:      sess.IDToken,
		Email:        sess.Email,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    strconv.Itoa(int(sess.ExpiresIn.Seconds())),
		LocalID:      sess.LocalID,
		Registered:   method == "accounts:signInWithPassword",
	})
}

// documentName resolves the addressed document. ok is false when the request
// targets another project, which the emulator treats as missing.
func (s *HTTPServer) documentName(r *http.Request) (name string, ok bool) {
	param := func(key string) string {
		v := chi.URLParam(r, key)
		if u, err := url.PathUnescape(v); err == nil {
			return u
		}
		return v
	}

	project := param("project")
	if project != s.projectID {
		return "", false
	}
	return documents.Name(project, param("database"), param("collection"), param("docID")), true
}

// authorized rejects a signed-in caller addressing another user's document.
// Anonymous callers are allowed.
func (s *HTTPServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	uid, ok := userIDFromContext(r.Context())
	if !ok {
		return true
	}
	docID, _ := url.PathUnescape(chi.URLParam(r, "docID"))
	if uid != docID {
		writeError(w, http.StatusForbidden, "PERMISSION_DENIED", "Missing or insufficient permissions.")
		return false
	}
	return true
}

func (s *HTTPServer) GetDocument(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}

	name, ok := s.documentName(r)
	var (
		doc *documents.Document
		err = common.ErrorNotFound
	)
	if ok {
		doc, err = s.documents.Get(r.Context(), name)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Document \""+name+"\" not found.")
			return
		}
		s.logger.Error(r.Context(), "get document failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal error.")
		return
	}

	writeJSON(w, http.StatusOK, toDocumentBody(doc))
}

func (s *HTTPServer) PatchDocument(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}

	name, ok := s.documentName(r)
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Project not found.")
		return
	}

	var body documentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid JSON payload received.")
		return
	}

	doc, err := s.documents.Patch(r.Context(), name, body.Fields)
	if err != nil {
		if errors.Is(err, documents.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}
		s.logger.Error(r.Context(), "patch document failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Internal error.")
		return
	}

	writeJSON(w, http.StatusOK, toDocumentBody(doc))
}

func toDocumentBody(d *documents.Document) documentBody {
	fields := d.Fields
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return documentBody{
		Name:       d.Name,
		Fields:     fields,
		CreateTime: d.CreateTime.UTC().Format(time.RFC3339Nano),
		UpdateTime: d.UpdateTime.UTC().Format(time.RFC3339Nano),
	}
}
