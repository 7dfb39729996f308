// Package updates builds single-row UPDATE statements from partial JSON
// payloads against an explicit per-resource schema.
package updates

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
)

type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
	JSON
)

// Field maps a payload key to a column.
type Field struct {
	Name   string
	Column string
	Kind   Kind
	// Nullable allows an explicit JSON null, bound as SQL NULL.
	Nullable bool
	// Rules is a validator tag applied to the decoded value.
	Rules string
	// Transform runs after validation, e.g. sanitizing or hashing.
	Transform func(v any) (any, error)
}

func (f Field) column() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

type Schema struct {
	Table string
	// Key defaults to "id".
	Key string
	// AuditColumn receives the acting user id when set.
	AuditColumn string
	// TouchColumn receives the current time when set.
	TouchColumn string
	Fields      []Field
}

func (s Schema) key() string {
	if s.Key != "" {
		return s.Key
	}
	return "id"
}

// Names lists the mutable payload keys in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Payload is a decoded request body; absent keys mean "leave unchanged".
type Payload map[string]json.RawMessage

// Has reports whether key is present in the payload.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Bool decodes a boolean key, ok is false when absent or not a boolean.
func (p Payload) Bool(key string) (value bool, ok bool) {
	raw, present := p[key]
	if !present {
		return false, false
	}
	v, err := decodeBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

var ErrNoFieldsToUpdate = errors.New("nenhum campo para atualizar")

type UnknownFieldsError struct {
	Fields []string
}

func (e *UnknownFieldsError) Error() string {
	return "campos não permitidos: " + strings.Join(e.Fields, ", ")
}

type FieldError struct {
	Field   string
	Message string
}

type InvalidFieldsError struct {
	Fields []FieldError
}

func (e *InvalidFieldsError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "campos inválidos: " + strings.Join(parts, "; ")
}

// Statement is a built UPDATE; Args line up with the placeholders in SQL.
type Statement struct {
	SQL     string
	Args    []any
	Columns []string
}

// Exec runs the statement after rebinding placeholders for the connection's dialect.
func (st *Statement) Exec(ctx context.Context, db sqlx.ExtContext) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(st.SQL), st.Args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type Builder struct {
	validate   *validator.Validate
	translator ut.Translator
	Now        func() time.Time
}

// NewBuilder uses v for field rules; trans localizes rule failures and may be nil.
func NewBuilder(v *validator.Validate, trans ut.Translator) *Builder {
	if v == nil {
		v = validator.New()
	}
	return &Builder{validate: v, translator: trans, Now: time.Now}
}

// Build folds over the schema fields in order, emitting a "column = ?"
// and its argument together for every key present in the payload.
func (b *Builder) Build(s Schema, id any, payload Payload, actor uint) (*Statement, error) {
	known := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
	}

	var unknown []string
	for k := range payload {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownFieldsError{Fields: unknown}
	}

	sets := make([]string, 0, len(payload)+2)
	args := make([]any, 0, len(payload)+3)
	columns := make([]string, 0, len(payload))
	var invalid []FieldError

	for _, f := range s.Fields {
		raw, ok := payload[f.Name]
		if !ok {
			continue
		}
		v, err := b.value(f, raw)
		if err != nil {
			invalid = append(invalid, FieldError{Field: f.Name, Message: err.Error()})
			continue
		}
		sets = append(sets, f.column()+" = ?")
		args = append(args, v)
		columns = append(columns, f.column())
	}

	if len(invalid) > 0 {
		return nil, &InvalidFieldsError{Fields: invalid}
	}
	if len(columns) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if s.AuditColumn != "" {
		sets = append(sets, s.AuditColumn+" = ?")
		args = append(args, actor)
	}
	if s.TouchColumn != "" {
		sets = append(sets, s.TouchColumn+" = ?")
		args = append(args, b.Now())
	}
	args = append(args, id)

	return &Statement{
		SQL:     fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.Table, strings.Join(sets, ", "), s.key()),
		Args:    args,
		Columns: columns,
	}, nil
}

func (b *Builder) value(f Field, raw json.RawMessage) (any, error) {
	if isNull(raw) {
		if !f.Nullable {
			return nil, errors.New("não pode ser nulo")
		}
		return nil, nil
	}

	var (
		v   any
		err error
	)
	switch f.Kind {
	case String:
		var s string
		if err = json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("deve ser texto")
		}
		v = s
	case Int:
		v, err = decodeInt(raw)
	case Float:
		v, err = decodeFloat(raw)
	case Bool:
		v, err = decodeBool(raw)
	case Time:
		var s string
		if err = json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("deve ser uma data")
		}
		if strings.TrimSpace(s) == "" {
			if !f.Nullable {
				return nil, errors.New("não pode ser vazio")
			}
			return nil, nil
		}
		v, err = ParseTime(s)
	case JSON:
		if !json.Valid(raw) {
			return nil, errors.New("JSON inválido")
		}
		var buf bytes.Buffer
		if err = json.Compact(&buf, raw); err != nil {
			return nil, errors.New("JSON inválido")
		}
		v = buf.String()
	default:
		return nil, fmt.Errorf("tipo de campo desconhecido %d", f.Kind)
	}
	if err != nil {
		return nil, err
	}

	if f.Rules != "" {
		if err := b.validate.Var(v, f.Rules); err != nil {
			return nil, b.ruleError(err)
		}
	}

	if f.Transform != nil {
		return f.Transform(v)
	}
	return v, nil
}

func (b *Builder) ruleError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	if b.translator != nil {
		return errors.New(strings.TrimSpace(verrs[0].Translate(b.translator)))
	}
	return fmt.Errorf("falhou a regra %q", verrs[0].Tag())
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeInt(raw json.RawMessage) (int64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, errors.New("deve ser um número inteiro")
		}
		n = json.Number(strings.TrimSpace(s))
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, errors.New("deve ser um número inteiro")
	}
	return i, nil
}

func decodeFloat(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, errors.New("deve ser um número")
		}
		n = json.Number(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, errors.New("deve ser um número")
	}
	return f, nil
}

func decodeBool(raw json.RawMessage) (bool, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if b, err := strconv.ParseBool(s); err == nil {
			return b, nil
		}
	}
	return false, errors.New("deve ser verdadeiro ou falso")
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 timestamps, HTML datetime-local values and plain dates.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("data inválida")
}

// ParseOptionalTime parses s when non-empty.
func ParseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseTime(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
