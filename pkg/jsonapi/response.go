package jsonapi

import (
	"encoding/json"
	"net/http"
)

// WriteDocument writes doc with the JSON:API content type.
func WriteDocument(w http.ResponseWriter, status int, doc Document) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

// WriteData writes data as the primary payload.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteDocument(w, status, Document{Data: data})
}

// WriteDataMeta writes data with top-level metadata.
func WriteDataMeta(w http.ResponseWriter, status int, data any, meta Meta) {
	WriteDocument(w, status, Document{Data: data, Meta: meta})
}

// WritePage writes one page of a collection with paging meta and links.
func WritePage(w http.ResponseWriter, data any, p *Pagination) {
	WriteDocument(w, http.StatusOK, Document{Data: data, Meta: p.Meta(), Links: p.Links()})
}

// WriteError writes an error document.
// The HTTP status is taken from the first error.
func WriteError(w http.ResponseWriter, errs ...Error) {
	if len(errs) == 0 {
		errs = []Error{ErrInternal("")}
	}
	status := errs[0].StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	WriteDocument(w, status, Document{Errors: errs})
}

// WriteNoContent writes a 204 response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
