package queries

import (
	"context"
	"errors"
	"strings"

	"bookdesk/internal/core/domain/model/kernel"
	"bookdesk/internal/core/domain/model/product"
	"bookdesk/internal/pkg/errs"
	"bookdesk/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinSearchLength  = 3
	MaxSearchResults = 10
)

var ErrSearchStudentsQueryIsNotConstructed = errors.New(
	"SearchStudentsQuery must be created via NewSearchStudentsQuery constructor",
)

// SearchStudentsQuery finds students whose name or seat id contains the text.
type SearchStudentsQuery struct {
	text    string
	classID *int

	guard guard.ConstructorGuard
}

// NewSearchStudentsQuery accepts any text; short text simply matches nothing.
// classID, when given, must be a valid class.
func NewSearchStudentsQuery(text string, classID *int) (SearchStudentsQuery, error) {
	q := SearchStudentsQuery{text: strings.TrimSpace(text), guard: guard.NewConstructorGuard()}
	if classID != nil {
		if *classID < product.MinClassID || *classID > product.MaxClassID {
			return SearchStudentsQuery{}, errs.NewValueIsOutOfRangeError("classId", *classID,
				product.MinClassID, product.MaxClassID)
		}
		c := *classID
		q.classID = &c
	}
	return q, nil
}

func (q SearchStudentsQuery) Validate() error {
	return q.guard.Validate(ErrSearchStudentsQueryIsNotConstructed)
}

func (q SearchStudentsQuery) Text() string {
	return q.text
}

func (q SearchStudentsQuery) ClassID() *int {
	return q.classID
}

type StudentResponse struct {
	ID      kernel.UUID
	Name    string
	SeatID  string
	ClassID int
}

type SearchStudentsQueryHandler struct {
	db *gorm.DB
}

func NewSearchStudentsQueryHandler(db *gorm.DB) SearchStudentsQueryHandler {
	return SearchStudentsQueryHandler{db: db}
}

// Handle returns at most MaxSearchResults students sorted by name.
func (h SearchStudentsQueryHandler) Handle(ctx context.Context, query SearchStudentsQuery) ([]StudentResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	students := make([]StudentResponse, 0)
	if len([]rune(query.Text())) < MinSearchLength {
		return students, nil
	}

	pattern := "%" + escapeLike(query.Text()) + "%"
	tx := h.db.WithContext(ctx).
		Table("students").
		Select("id, name, seat_id, class_id").
		Where("name ILIKE ? OR seat_id ILIKE ?", pattern, pattern)
	if classID := query.ClassID(); classID != nil {
		tx = tx.Where("class_id = ?", *classID)
	}

	rows, err := tx.Order("name").Limit(MaxSearchResults).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			s     StudentResponse
			rawID uuid.UUID
		)
		if err = rows.Scan(&rawID, &s.Name, &s.SeatID, &s.ClassID); err != nil {
			return nil, err
		}
		if s.ID, err = toKernel(rawID); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
