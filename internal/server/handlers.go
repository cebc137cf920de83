package server

import (
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"

	"paste/internal/models"
)

// Usage is the text served on GET /.
const Usage = `
    USAGE

      POST /

          accepts raw data in the body of the request and responds with a URL of
          a page containing the body's content

      GET /<id>

          retrieves the content for the paste with id ` + "`<id>`" + `

      GET /<id>/<lang>

          retrieves the content for the paste with id ` + "`<id>`" + `, highlighted
          as language ` + "`<lang>`" + ` (a file extension such as rs, go or py)

      DELETE /<id>

          deletes the paste with id ` + "`<id>`" + `
    `

const (
	msgNotFound    = "Paste not found"
	msgDeleted     = "Deleted!"
	msgInvalidID   = "Invalid paste id"
	msgTooLarge    = "Paste too large"
	msgInvalidBody = "Invalid paste body"
	msgNotUTF8     = "Paste must be valid UTF-8 text"
	msgInternal    = "internal error"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeText(w, http.StatusOK, "ok")
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	s.writeText(w, http.StatusOK, Usage)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	content, ok := s.readBody(w, r)
	if !ok {
		return
	}

	paste, err := s.app.Pastes.CreatePaste(r.Context(), content)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.log().Debug("paste created", "id", paste.ID, "bytes", len(paste.Content))
	w.Header().Set("Location", "/"+paste.ID.String())
	s.writeText(w, http.StatusCreated, PasteURL(r.Host, paste.ID))
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	paste, ok := s.lookupPaste(w, r)
	if !ok {
		return
	}
	s.writeText(w, http.StatusOK, paste.Content)
}

func (s *Server) handleRetrieveHighlighted(w http.ResponseWriter, r *http.Request) {
	paste, ok := s.lookupPaste(w, r)
	if !ok {
		return
	}
	lang := r.PathValue("lang")
	s.writeText(w, http.StatusOK, s.app.Highlighter.Render(paste.Content, lang, s.app.Theme))
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}

	paste, err := s.app.Pastes.RemovePaste(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if paste == nil {
		s.writeText(w, http.StatusNotFound, msgNotFound)
		return
	}

	s.log().Debug("paste removed", "id", paste.ID)
	s.writeText(w, http.StatusOK, msgDeleted)
}

// lookupPaste resolves the {id} path value, writing the failure response
// itself when the paste cannot be returned.
func (s *Server) lookupPaste(w http.ResponseWriter, r *http.Request) (*models.Paste, bool) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return nil, false
	}

	paste, err := s.app.Pastes.GetPaste(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return nil, false
	}
	if paste == nil {
		s.writeText(w, http.StatusNotFound, msgNotFound)
		return nil, false
	}
	return paste, true
}

func (s *Server) pathIDOrBadRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := models.ParsePasteID(r.PathValue("id"))
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, msgInvalidID, err)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeErrorReq(w, r, http.StatusRequestEntityTooLarge, msgTooLarge, err)
			return "", false
		}
		s.writeErrorReq(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return "", false
	}
	if !utf8.Valid(body) {
		s.writeErrorReq(w, r, http.StatusBadRequest, msgNotUTF8, errors.New("body is not valid utf-8"))
		return "", false
	}
	return string(body), true
}
