// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MKhiriev/vm-marketplace/internal/app"
	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/internal/utils"
	"github.com/MKhiriev/vm-marketplace/models"
)

const (
	totalCountHeader = "X-Total-Count"
	defaultPageLimit = 10
)

func (h *Handler) listVMs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseVMFilter(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.services.VMService.ListVMs(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items := page.Items
	if items == nil {
		items = []models.VirtualMachine{}
	}

	w.Header().Set(totalCountHeader, strconv.FormatInt(page.Total, 10))
	utils.WriteJSON(w, items, http.StatusOK)
}

func (h *Handler) getVM(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	vm, err := h.services.VMService.GetVM(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vm, http.StatusOK)
}

func (h *Handler) createVM(w http.ResponseWriter, r *http.Request) {
	var request models.VMCreate
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	vm, err := h.services.VMService.CreateVM(r.Context(), request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("vm_id", vm.ID).Msg("vm created")
	utils.WriteJSON(w, vm, http.StatusCreated)
}

func (h *Handler) updateVM(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request models.VMUpdate
	if err = decodeJSON(r, &request); err != nil {
		writeError(w, r, err)
		return
	}

	vm, err := h.services.VMService.UpdateVM(r.Context(), id, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, vm, http.StatusOK)
}

func (h *Handler) deleteVM(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.VMService.DeleteVM(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Int64("vm_id", id).Msg("vm deleted")
	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgVMDeleted}, http.StatusOK)
}

// parseVMFilter reads the listing query parameters. Range checks on limit
// and prices are left to the service validator.
func parseVMFilter(query url.Values) (models.VMFilter, error) {
	filter := models.VMFilter{
		Limit:  defaultPageLimit,
		Search: query.Get("search"),
		OSType: query.Get("os_type"),
	}

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || skip < 0 {
			return models.VMFilter{}, fmt.Errorf("%w: skip must be a non-negative integer", ErrInvalidQueryParameter)
		}
		filter.Skip = uint64(skip)
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.VMFilter{}, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidQueryParameter)
		}
		filter.Limit = limit
	}

	var err error
	if filter.MinPrice, err = parsePrice(query, "min_price"); err != nil {
		return models.VMFilter{}, err
	}
	if filter.MaxPrice, err = parsePrice(query, "max_price"); err != nil {
		return models.VMFilter{}, err
	}

	return filter, nil
}

func parsePrice(query url.Values, name string) (*float64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidQueryParameter, name)
	}
	return &price, nil
}
