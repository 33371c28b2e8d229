package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/market_radar/pkg/config"
	"github.com/iWorld-y/market_radar/pkg/model"
)

// ErrNotFound 查询的分析记录不存在
var ErrNotFound = errors.New("analysis not found")

// Storage postgres 持久化层
type Storage struct {
	db *sql.DB
}

// NewStorage 建立连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close 关闭数据库连接
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	query := `CREATE TABLE IF NOT EXISTS analyses (
		id SERIAL PRIMARY KEY,
		segment TEXT NOT NULL,
		product TEXT,
		origin TEXT NOT NULL,
		document JSONB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute query %s: %w", query, err)
	}
	return nil
}

// AnalysisRecord 一条已保存的分析
type AnalysisRecord struct {
	ID        int             `json:"id"`
	Segment   string          `json:"segment"`
	Product   string          `json:"product"`
	Origin    string          `json:"origin"`
	CreatedAt time.Time       `json:"created_at"`
	Document  json.RawMessage `json:"document,omitempty"`
}

// SaveAnalysis 保存完整分析文档
func (s *Storage) SaveAnalysis(ctx context.Context, doc *model.AnalysisDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (segment, product, origin, document)
		VALUES ($1, $2, $3, $4)`,
		doc.Request.Segment, doc.Request.Product, doc.Provenance.Origin, data)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// ListAnalyses 按创建时间倒序列出摘要（不含文档正文）
func (s *Storage) ListAnalyses(ctx context.Context) ([]AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, segment, product, origin, created_at
		FROM analyses
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.Segment, &rec.Product, &rec.Origin, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetAnalysis 按 ID 获取完整记录
func (s *Storage) GetAnalysis(ctx context.Context, id int) (*AnalysisRecord, error) {
	var rec AnalysisRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, segment, product, origin, document, created_at
		FROM analyses WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Segment, &rec.Product, &rec.Origin, &rec.Document, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis %d: %w", id, err)
	}
	return &rec, nil
}

// LatestAnalysis 获取最近一条完整记录
func (s *Storage) LatestAnalysis(ctx context.Context) (*AnalysisRecord, error) {
	var rec AnalysisRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, segment, product, origin, document, created_at
		FROM analyses ORDER BY created_at DESC LIMIT 1`).
		Scan(&rec.ID, &rec.Segment, &rec.Product, &rec.Origin, &rec.Document, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	return &rec, nil
}

// DeleteAnalysis 按 ID 删除
func (s *Storage) DeleteAnalysis(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
