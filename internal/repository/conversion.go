package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/entity"
)

type ConversionRepository interface {
	Save(ctx context.Context, c *entity.Conversion) error
	List(ctx context.Context, limit, offset int) ([]*entity.Conversion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Conversion, error)
}

type conversionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewConversionRepository(db *sql.DB, logger *slog.Logger) ConversionRepository {
	return &conversionRepository{
		db:     db,
		logger: logger,
	}
}

const conversionColumns = `id, filename, format, file_size, used_ocr, pages,
	predicted_title, markdown_content, categories, keywords, severity,
	summary_content, corrected_content, created_at`

func (r *conversionRepository) Save(ctx context.Context, c *entity.Conversion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	categories, err := json.Marshal(emptyAsList(c.Categories))
	if err != nil {
		return err
	}
	keywords, err := json.Marshal(emptyAsList(c.Keywords))
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO conversions (`+conversionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.Filename, c.Format, c.FileSize, c.UsedOCR, c.Pages,
		c.PredictedTitle, c.MarkdownContent, string(categories), string(keywords),
		c.Severity, c.SummaryContent, c.CorrectedContent, c.CreatedAt)
	if err != nil {
		r.logger.Error("failed to save conversion", "id", c.ID, "error", err)
		return err
	}
	return nil
}

func (r *conversionRepository) List(ctx context.Context, limit, offset int) ([]*entity.Conversion, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+conversionColumns+`
		FROM conversions ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		r.logger.Error("failed to list conversions", "error", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *conversionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Conversion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+conversionColumns+`
		FROM conversions WHERE id = ?`, id.String())
	c, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: conversion %s", common.ErrNotFound, id)
	}
	if err != nil {
		r.logger.Error("failed to get conversion", "id", id, "error", err)
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(row rowScanner) (*entity.Conversion, error) {
	var (
		c          entity.Conversion
		rawID      string
		categories string
		keywords   string
	)
	err := row.Scan(&rawID, &c.Filename, &c.Format, &c.FileSize, &c.UsedOCR, &c.Pages,
		&c.PredictedTitle, &c.MarkdownContent, &categories, &keywords, &c.Severity,
		&c.SummaryContent, &c.CorrectedContent, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if c.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categories), &c.Categories); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keywords), &c.Keywords); err != nil {
		return nil, err
	}
	return &c, nil
}

func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
