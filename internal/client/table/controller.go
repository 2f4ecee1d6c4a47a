// Package table translates row- and cell-level interaction on the record
// table into store calls. The controller owns no persisted state, only the
// transient edit mode of the one cell being edited.
package table

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"fintrack/internal/models"
)

// Column identifies one column of the record table.
type Column int

const (
	ColDescription Column = iota
	ColAmount
	ColCategory
	ColPaymentMethod
	ColDate
)

// Columns lists the table columns in display order.
var Columns = []Column{ColDescription, ColAmount, ColCategory, ColPaymentMethod, ColDate}

// Editable reports whether the column accepts inline edits. The date column
// never does.
func (c Column) Editable() bool {
	return c != ColDate
}

func (c Column) Title() string {
	switch c {
	case ColDescription:
		return "Description"
	case ColAmount:
		return "Amount"
	case ColCategory:
		return "Category"
	case ColPaymentMethod:
		return "Payment Method"
	case ColDate:
		return "Date"
	}
	return ""
}

// CellValue renders the record field shown in the given column.
func CellValue(r models.Record, c Column) string {
	switch c {
	case ColDescription:
		return r.Description
	case ColAmount:
		return strconv.FormatFloat(r.Amount, 'f', -1, 64)
	case ColCategory:
		return r.Category
	case ColPaymentMethod:
		return r.PaymentMethod
	case ColDate:
		return r.Date.Format("2006-01-02")
	}
	return ""
}

// RecordStore is the slice of the store the controller needs.
type RecordStore interface {
	Records() []models.Record
	Update(ctx context.Context, id string, rec models.Record) (models.Record, error)
	Delete(ctx context.Context, id string) (models.Record, error)
}

var (
	ErrNotEditable = errors.New("column is not editable")
	ErrNoSuchRow   = errors.New("no such row")
)

// Controller drives the per-cell edit lifecycle: a cell is viewing until
// activated, then editing until blurred. Blur always commits the buffered
// value, changed or not; there is no cancel path.
type Controller struct {
	store RecordStore

	editing bool
	row     int
	col     Column
	buffer  string
}

func NewController(store RecordStore) *Controller {
	return &Controller{store: store}
}

// Editing returns the cell currently in edit mode, if any.
func (c *Controller) Editing() (row int, col Column, ok bool) {
	return c.row, c.col, c.editing
}

// Buffer returns the value buffered for the editing cell. It is local to the
// controller and not written to the store until Blur.
func (c *Controller) Buffer() string {
	return c.buffer
}

// Activate puts the cell at (row, col) into edit mode, seeding the buffer
// with the cell's current value. Activation fails for non-editable columns
// and rows outside the snapshot.
func (c *Controller) Activate(row int, col Column) error {
	if !col.Editable() {
		return ErrNotEditable
	}
	recs := c.store.Records()
	if row < 0 || row >= len(recs) {
		return ErrNoSuchRow
	}
	c.editing = true
	c.row = row
	c.col = col
	c.buffer = CellValue(recs[row], col)
	return nil
}

// SetBuffer replaces the buffered value of the editing cell.
func (c *Controller) SetBuffer(s string) {
	if c.editing {
		c.buffer = s
	}
}

// Input appends typed text to the buffer.
func (c *Controller) Input(s string) {
	if c.editing {
		c.buffer += s
	}
}

// Backspace removes the last byte of the buffer.
func (c *Controller) Backspace() {
	if c.editing && len(c.buffer) > 0 {
		c.buffer = c.buffer[:len(c.buffer)-1]
	}
}

// Commit leaves edit mode and resolves the buffered value into the full
// replacement record: the record at the edited row with the single edited
// field swapped for the buffer. It does not call the store, so an event loop
// can run it synchronously and ship the record off-thread afterwards; ok is
// false when no cell was editing.
//
// A buffer that fails to parse for the column (e.g. a non-numeric amount)
// aborts the commit: the cell reverts to viewing and the error is returned.
func (c *Controller) Commit() (rec models.Record, ok bool, err error) {
	if !c.editing {
		return models.Record{}, false, nil
	}
	c.editing = false

	recs := c.store.Records()
	if c.row < 0 || c.row >= len(recs) {
		return models.Record{}, false, ErrNoSuchRow
	}

	updated := recs[c.row]
	switch c.col {
	case ColDescription:
		updated.Description = c.buffer
	case ColCategory:
		updated.Category = c.buffer
	case ColPaymentMethod:
		updated.PaymentMethod = c.buffer
	case ColAmount:
		amount, err := strconv.ParseFloat(strings.TrimSpace(c.buffer), 64)
		if err != nil {
			return models.Record{}, false, err
		}
		updated.Amount = amount
	}

	return updated, true, nil
}

// Blur commits the buffered value straight to the store. The commit happens
// even when the value is unchanged.
func (c *Controller) Blur(ctx context.Context) (models.Record, error) {
	updated, ok, err := c.Commit()
	if err != nil || !ok {
		return models.Record{}, err
	}
	return c.store.Update(ctx, updated.ID, updated)
}

// DeleteRow removes the record at row using the row's current id. A record
// that never got an id is sent as an empty id, which the server rejects.
func (c *Controller) DeleteRow(ctx context.Context, row int) (models.Record, error) {
	recs := c.store.Records()
	if row < 0 || row >= len(recs) {
		return models.Record{}, ErrNoSuchRow
	}
	return c.store.Delete(ctx, recs[row].ID)
}

// Total is the aggregate over the current snapshot. It is derived on demand,
// never stored.
func (c *Controller) Total() float64 {
	var sum float64
	for _, r := range c.store.Records() {
		sum += r.Amount
	}
	return sum
}
