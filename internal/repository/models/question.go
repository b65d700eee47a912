package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// StringMap stores a map[string]string as a JSON object in a CLOB column.
type StringMap map[string]string

// Value implements the driver.Valuer interface
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	jsonData, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringMap Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*m = StringMap{}
		return nil
	}

	return json.Unmarshal(bytesToParse, m)
}

// Question is the row model for the questions table.
type Question struct {
	ID           string         `db:"id"`
	Subject      string         `db:"subject"`
	Difficulty   string         `db:"difficulty"`
	QuestionType string         `db:"question_type"`
	Topic        string         `db:"topic"`
	SubTopic     sql.NullString `db:"sub_topic"`
	QuestionText string         `db:"question_text"`
	Explanation  sql.NullString `db:"explanation"`
	EloRating    int            `db:"elo_rating"`
	EloMin       int            `db:"elo_min"`
	EloMax       int            `db:"elo_max"`
	State        string         `db:"state"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (Question) TableName() string {
	return "questions"
}

// MultipleChoiceQuestion is the row model for multiple_choice_questions.
type MultipleChoiceQuestion struct {
	QuestionID    string `db:"question_id"`
	OptionA       string `db:"option_a"`
	OptionB       string `db:"option_b"`
	OptionC       string `db:"option_c"`
	OptionD       string `db:"option_d"`
	CorrectOption string `db:"correct_option"`
}

func (MultipleChoiceQuestion) TableName() string {
	return "multiple_choice_questions"
}

// TrueFalseQuestion is the row model for true_false_questions.
type TrueFalseQuestion struct {
	QuestionID    string `db:"question_id"`
	CorrectAnswer string `db:"correct_answer"`
}

func (TrueFalseQuestion) TableName() string {
	return "true_false_questions"
}

// FillInBlanksQuestion is the row model for fill_in_blanks_questions.
type FillInBlanksQuestion struct {
	QuestionID string      `db:"question_id"`
	Answers    StringSlice `db:"answers"`
	RawAnswer  string      `db:"raw_answer"`
}

func (FillInBlanksQuestion) TableName() string {
	return "fill_in_blanks_questions"
}

// MatchFollowingQuestion is the row model for match_following_questions.
type MatchFollowingQuestion struct {
	QuestionID string    `db:"question_id"`
	Pairs      StringMap `db:"pairs"`
	RawPairs   string    `db:"raw_pairs"`
}

func (MatchFollowingQuestion) TableName() string {
	return "match_following_questions"
}
