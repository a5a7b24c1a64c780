package repositories

import (
	"database/sql"
	"fmt"

	"tbexpert/internal/models"
)

type InstructionRepository struct {
	DB *sql.DB
}

func NewInstructionRepository(db *sql.DB) *InstructionRepository {
	return &InstructionRepository{DB: db}
}

const instructionSelect = `
	SELECT id, title, COALESCE(description,''), author, instruction_type, format,
	       category, duration_minutes, COALESCE(file,''), COALESCE(external_link,''),
	       created_date, view_count, is_popular
	FROM instructions
`

func scanInstructions(rows *sql.Rows) ([]*models.Instruction, error) {
	var res []*models.Instruction
	for rows.Next() {
		i := &models.Instruction{}
		var duration sql.NullInt64
		if err := rows.Scan(
			&i.ID, &i.Title, &i.Description, &i.Author, &i.InstructionType, &i.Format,
			&i.Category, &duration, &i.FilePath, &i.ExternalLink,
			&i.CreatedDate, &i.ViewCount, &i.IsPopular,
		); err != nil {
			return nil, fmt.Errorf("scan instruction: %w", err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			i.DurationMinutes = &d
		}
		res = append(res, i)
	}
	return res, rows.Err()
}

func (r *InstructionRepository) List() ([]*models.Instruction, error) {
	rows, err := r.DB.Query(instructionSelect + ` ORDER BY created_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list instructions: %w", err)
	}
	defer rows.Close()
	return scanInstructions(rows)
}

func (r *InstructionRepository) GetByID(id int64) (*models.Instruction, error) {
	rows, err := r.DB.Query(instructionSelect+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get instruction: %w", err)
	}
	defer rows.Close()
	items, err := scanInstructions(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, sql.ErrNoRows
	}
	return items[0], nil
}

func (r *InstructionRepository) IncrementViews(id int64) error {
	res, err := r.DB.Exec(`UPDATE instructions SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment instruction views: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
