// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/vm-marketplace/internal/logger"
	"github.com/MKhiriev/vm-marketplace/models"
)

type vmRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVMRepository constructs a [VMRepository] over the "virtual_machines"
// table.
func NewVMRepository(db *DB, logger *logger.Logger) VMRepository {
	logger.Debug().Msg("creating virtual machine repository")
	return &vmRepository{
		db:     db,
		logger: logger,
	}
}

// ListVMs returns one page of listings ordered by id together with the number
// of rows matching the filter across all pages.
func (r *vmRepository) ListVMs(ctx context.Context, filter models.VMFilter) (models.VMPage, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountVMsQuery(r.db.dialect, filter)
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.ListVMs").Msg("error building count query")
		return models.VMPage{}, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*vmRepository.ListVMs").Msg("error counting virtual machines")
		return models.VMPage{}, wrapDBError(err)
	}

	query, args, err := buildListVMsQuery(r.db.dialect, filter)
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.ListVMs").Msg("error building list query")
		return models.VMPage{}, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.ListVMs").Msg("error selecting virtual machines")
		return models.VMPage{}, wrapDBError(err)
	}
	defer rows.Close()

	items := make([]models.VirtualMachine, 0, filter.Limit)
	for rows.Next() {
		vm, scanErr := scanVM(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*vmRepository.ListVMs").Msg("error scanning virtual machine row")
			return models.VMPage{}, scanErr
		}
		items = append(items, vm)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*vmRepository.ListVMs").Msg("error iterating virtual machine rows")
		return models.VMPage{}, wrapDBError(err)
	}

	return models.VMPage{Items: items, Total: total}, nil
}

func (r *vmRepository) GetVM(ctx context.Context, id int64) (models.VirtualMachine, error) {
	vm, err := scanVM(r.db.QueryRowContext(ctx, getVM, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VirtualMachine{}, ErrVMNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*vmRepository.GetVM").Int64("vm_id", id).Msg("error selecting virtual machine")
		return models.VirtualMachine{}, wrapDBError(err)
	}
	return vm, nil
}

func (r *vmRepository) CreateVM(ctx context.Context, vm models.VirtualMachine) (models.VirtualMachine, error) {
	log := logger.FromContext(ctx)

	if vm.Status == "" {
		vm.Status = models.VMStatusAvailable
	}

	created, err := scanVM(r.db.QueryRowContext(ctx, createVM,
		vm.Name,
		vm.Description,
		vm.Specifications,
		vm.Price,
		vm.ImageType,
		string(vm.Status),
		vm.Tags,
		time.Now().UTC(),
	))
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.CreateVM").Msg("error inserting virtual machine")
		if r.db.classify(err) == CheckViolation {
			return models.VirtualMachine{}, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		return models.VirtualMachine{}, wrapDBError(err)
	}

	return created, nil
}

// UpdateVM applies the non-nil fields of update and returns the stored row.
func (r *vmRepository) UpdateVM(ctx context.Context, id int64, update models.VMUpdate) (models.VirtualMachine, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateVMQuery(r.db.dialect, id, update, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.UpdateVM").Msg("error building update query")
		return models.VirtualMachine{}, fmt.Errorf("build update query: %w", err)
	}

	updated, err := scanVM(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VirtualMachine{}, ErrVMNotFound
		}
		log.Err(err).Str("func", "*vmRepository.UpdateVM").Int64("vm_id", id).Msg("error updating virtual machine")
		if r.db.classify(err) == CheckViolation {
			return models.VirtualMachine{}, fmt.Errorf("%w: %w", ErrConstraintViolation, err)
		}
		return models.VirtualMachine{}, wrapDBError(err)
	}

	return updated, nil
}

func (r *vmRepository) DeleteVM(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteVM, id)
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.DeleteVM").Int64("vm_id", id).Msg("error deleting virtual machine")
		return wrapDBError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*vmRepository.DeleteVM").Msg("error reading affected rows")
		return wrapDBError(err)
	}
	if affected == 0 {
		return ErrVMNotFound
	}

	return nil
}

func scanVM(row rowScanner) (models.VirtualMachine, error) {
	var vm models.VirtualMachine
	err := row.Scan(
		&vm.ID,
		&vm.Name,
		&vm.Description,
		&vm.Specifications,
		&vm.Price,
		&vm.ImageType,
		&vm.Status,
		&vm.Tags,
		timeScanner{&vm.CreatedAt},
		nullTimeScanner{&vm.UpdatedAt},
	)
	if err != nil {
		return models.VirtualMachine{}, fmt.Errorf("scan virtual machine: %w", err)
	}
	if vm.Tags == nil {
		vm.Tags = models.Tags{}
	}
	return vm, nil
}
