// Copyright COAZ Digital, 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/coazdigital/coaz-assist/pkg/types"
)

// maxBodyBytes bounds request bodies on the content endpoints.
const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func validateItem(item types.ContentItem) error {
	if strings.TrimSpace(item.Slug) == "" {
		return errors.New("slug is required")
	}
	if strings.TrimSpace(item.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(item.Body) == "" {
		return errors.New("body is required")
	}
	return nil
}

func (s *Server) handleContentList(w http.ResponseWriter, r *http.Request) {
	if !s.contentReady(w) {
		return
	}
	items, err := s.store.List(r.Context(), r.URL.Query().Get("section"))
	if err != nil {
		s.log.Error().Err(err).Msg("content list failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []types.ContentItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleContentGet(w http.ResponseWriter, r *http.Request) {
	if !s.contentReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	item, err := s.store.Get(r.Context(), id)
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "content item not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("content get failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleContentCreate(w http.ResponseWriter, r *http.Request) {
	if !s.contentReady(w) {
		return
	}
	var item types.ContentItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateItem(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.Create(r.Context(), item)
	if err != nil {
		s.log.Error().Err(err).Str("slug", item.Slug).Msg("content create failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleContentUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.contentReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var item types.ContentItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateItem(item); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = id
	updated, err := s.store.Update(r.Context(), item)
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "content item not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("content update failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleContentDelete(w http.ResponseWriter, r *http.Request) {
	if !s.contentReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	err = s.store.Delete(r.Context(), id)
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "content item not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("content delete failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
