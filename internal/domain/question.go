package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// QuestionType enumerates the supported intake-form input kinds.
type QuestionType string

const (
	QuestionText     QuestionType = "text"
	QuestionTextarea QuestionType = "textarea"
	QuestionNumber   QuestionType = "number"
	QuestionSelect   QuestionType = "select"
	QuestionCheckbox QuestionType = "checkbox"
)

// RequiresOptions reports whether the type needs a non-empty options list.
func (t QuestionType) RequiresOptions() bool {
	return t == QuestionSelect || t == QuestionCheckbox
}

// QuestionAction is a trainer's customization verb against the catalog.
type QuestionAction string

const (
	ActionAdd    QuestionAction = "add"
	ActionEdit   QuestionAction = "edit"
	ActionDelete QuestionAction = "delete"
)

func (a QuestionAction) Valid() bool {
	return a == ActionAdd || a == ActionEdit || a == ActionDelete
}

// QuestionSource tags where a resolved question's content came from.
type QuestionSource string

const (
	SourceGlobal  QuestionSource = "global"
	SourceTrainer QuestionSource = "trainer"
)

// StringList is a []string stored as a JSON array in a TEXT column.
// Serialization happens at the storage boundary only.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// GlobalQuestion is a platform-wide intake question available to every
// trainer. Immutable from the trainer's perspective; trainers customize their
// view of it through TrainerQuestion overlays, never by editing these rows.
type GlobalQuestion struct {
	ID           int64        `db:"id" json:"id"`
	QuestionText string       `db:"question_text" json:"questionText"`
	QuestionType QuestionType `db:"question_type" json:"questionType"`
	Options      StringList   `db:"options" json:"options,omitempty"`
	Category     string       `db:"category" json:"category"`
	VisualAidURL string       `db:"visual_aid_url" json:"visualAidUrl,omitempty"`
	IsDefault    bool         `db:"is_default" json:"isDefault"`
	Template     string       `db:"template" json:"template,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// TrainerQuestion is a trainer-specific overlay row. When GlobalQuestionID is
// set the row expresses an opinion (edit or delete) about that catalog
// question; when it is nil the row is a brand-new question the trainer added
// (action=add). At most one overlay exists per (trainer, global question).
type TrainerQuestion struct {
	ID               int64          `db:"id" json:"id"`
	TrainerID        int64          `db:"trainer_id" json:"trainerId"`
	GlobalQuestionID *int64         `db:"global_question_id" json:"globalQuestionId,omitempty"`
	QuestionText     string         `db:"question_text" json:"questionText"`
	QuestionType     QuestionType   `db:"question_type" json:"questionType"`
	Options          StringList     `db:"options" json:"options,omitempty"`
	Category         string         `db:"category" json:"category"`
	VisualAidURL     string         `db:"visual_aid_url" json:"visualAidUrl,omitempty"`
	Action           QuestionAction `db:"action" json:"action"`
	Template         string         `db:"template" json:"template,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// EffectiveQuestion is the merged, per-trainer view of one question. It is
// derived on every resolve and never persisted.
type EffectiveQuestion struct {
	// Key is the stable identity inside one resolved set:
	// "global_<id>" for catalog questions, "trainer_<overlayID>" for
	// trainer-original additions.
	Key          string         `json:"key"`
	QuestionText string         `json:"questionText"`
	QuestionType QuestionType   `json:"questionType"`
	Options      StringList     `json:"options,omitempty"`
	Category     string         `json:"category"`
	VisualAidURL string         `json:"visualAidUrl,omitempty"`
	Template     string         `json:"template,omitempty"`
	Source       QuestionSource `json:"questionSource"`
}

// GlobalKey and TrainerKey build EffectiveQuestion identities.
func GlobalKey(id int64) string  { return fmt.Sprintf("global_%d", id) }
func TrainerKey(id int64) string { return fmt.Sprintf("trainer_%d", id) }
