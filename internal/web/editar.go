package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Editor messages.
const (
	msgEditorHelp   = "Modifique los valores directamente en la tabla y presione el botón de abajo."
	msgUpdated      = "Archivo actualizado."
	msgUpdateFailed = "No se pudo actualizar el archivo."
)

// newSlots is the number of blank rows the editor offers for additions.
const newSlots = 3

type editorCell struct {
	Name  string
	Value string
}

type editorRow struct {
	Index   int
	Delete  string
	Deleted bool
	Cells   []editorCell
}

type newRow struct {
	Cells []editorCell
	At    editorCell
}

type editorData struct {
	Help     string
	Columns  []string
	Count    int
	Rows     []editorRow
	NewCount int
	New      []newRow
	Submit   string
}

// editorGrid is the editor table as submitted strings: the existing rows
// with their delete marks, then the added rows with their target positions.
type editorGrid struct {
	rows    [][]string
	deleted []bool
	added   [][]string
	at      []string
}

func gridFromDataset(ds types.Dataset) editorGrid {
	g := editorGrid{
		rows:    make([][]string, ds.Len()),
		deleted: make([]bool, ds.Len()),
	}
	for i, resp := range ds {
		g.rows[i] = resp.Values()
	}
	return g
}

// gridFromForm reads rows row-0..row-(rows-1) and new-0..new-(new-1). Both
// counts are bounded by the number of submitted keys, since every row
// carries one key per field.
func gridFromForm(form url.Values) (editorGrid, error) {
	n, err := formCount(form, "rows")
	if err != nil {
		return editorGrid{}, err
	}
	added := 0
	if form.Get("new") != "" {
		if added, err = formCount(form, "new"); err != nil {
			return editorGrid{}, err
		}
	}

	g := editorGrid{
		rows:    make([][]string, n),
		deleted: make([]bool, n),
		added:   make([][]string, added),
		at:      make([]string, added),
	}
	for i := range n {
		g.rows[i] = formValues(form, func(f string) string { return rowKey(i, f) })
		g.deleted[i] = form.Get(rowKey(i, "delete")) != ""
	}
	for i := range added {
		g.added[i] = formValues(form, func(f string) string { return newKey(i, f) })
		g.at[i] = form.Get(newKey(i, "at"))
	}
	return g, nil
}

func gridFromRequest(r *http.Request) (editorGrid, error) {
	if err := r.ParseForm(); err != nil {
		return editorGrid{}, err
	}
	return gridFromForm(r.PostForm)
}

func formCount(form url.Values, key string) (int, error) {
	raw := form.Get(key)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > len(form) {
		return 0, fmt.Errorf("%w: %s %q", types.ErrRowOutOfRange, key, raw)
	}
	return n, nil
}

func formValues(form url.Values, key func(field string) string) []string {
	values := make([]string, len(types.Fields))
	for j, f := range types.Fields {
		values[j] = form.Get(key(f.String()))
	}
	return values
}

func blankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// dataset validates the grid. Kept rows stay in order; each non-blank added
// row is then inserted at its position in the table built so far, or
// appended when no position is given.
func (g editorGrid) dataset() (types.Dataset, error) {
	ds := make(types.Dataset, 0, len(g.rows)+len(g.added))
	for i, values := range g.rows {
		if g.deleted[i] {
			continue
		}
		resp, err := types.ParseResponse(values)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i, err)
		}
		ds = append(ds, resp)
	}

	for i, values := range g.added {
		if blankRow(values) {
			continue
		}
		resp, err := types.ParseResponse(values)
		if err != nil {
			return nil, fmt.Errorf("fila nueva %d: %w", i+1, err)
		}
		pos := ds.Len()
		if at := strings.TrimSpace(g.at[i]); at != "" {
			if pos, err = strconv.Atoi(at); err != nil {
				return nil, fmt.Errorf("fila nueva %d: %w: posición %q", i+1, types.ErrRowOutOfRange, at)
			}
		}
		if ds, err = ds.InsertRow(pos, resp); err != nil {
			return nil, fmt.Errorf("fila nueva %d: %w", i+1, err)
		}
	}
	return ds, nil
}

// data lays the grid out for the template, padding the added rows to
// newSlots.
func (g editorGrid) data() editorData {
	d := editorData{
		Help:    msgEditorHelp,
		Columns: types.Columns(),
		Count:   len(g.rows),
		Rows:    make([]editorRow, len(g.rows)),
		Submit:  "💾 Guardar Cambios",
	}
	for i, values := range g.rows {
		row := editorRow{Index: i, Delete: rowKey(i, "delete"), Deleted: g.deleted[i]}
		for j, f := range types.Fields {
			row.Cells = append(row.Cells, editorCell{Name: rowKey(i, f.String()), Value: values[j]})
		}
		d.Rows[i] = row
	}

	slots := max(len(g.added), newSlots)
	d.NewCount = slots
	for i := range slots {
		var values []string
		var at string
		if i < len(g.added) {
			values, at = g.added[i], g.at[i]
		}
		row := newRow{At: editorCell{Name: newKey(i, "at"), Value: at}}
		for j, f := range types.Fields {
			cell := editorCell{Name: newKey(i, f.String())}
			if values != nil {
				cell.Value = values[j]
			}
			row.Cells = append(row.Cells, cell)
		}
		d.New = append(d.New, row)
	}
	return d
}

func newEditorData(ds types.Dataset) editorData {
	return gridFromDataset(ds).data()
}

func rowKey(i int, name string) string {
	return fmt.Sprintf("row-%d-%s", i, name)
}

func newKey(i int, name string) string {
	return fmt.Sprintf("new-%d-%s", i, name)
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.loadError(w, views.EditarEncuesta, err)
		return
	}
	s.render(w, http.StatusOK, views.EditarEncuesta, newPage(views.EditarEncuesta, newEditorData(ds)))
}

// handleSaveEditor rebuilds the dataset from the submitted table and
// overwrites the file with it. The file is untouched when any row is
// invalid or when the current file cannot be read as a survey table. An
// invalid table is shown again with the submitted values.
func (s *Server) handleSaveEditor(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.loadError(w, views.EditarEncuesta, err)
		return
	}
	grid, err := gridFromRequest(r)
	if err != nil {
		s.metrics.saves.WithLabelValues(resultInvalid).Inc()
		s.render(w, http.StatusBadRequest, views.EditarEncuesta,
			newPage(views.EditarEncuesta, newEditorData(ds)).with(noticeError, err.Error()))
		return
	}
	edited, err := grid.dataset()
	if err != nil {
		s.metrics.saves.WithLabelValues(resultInvalid).Inc()
		s.render(w, http.StatusBadRequest, views.EditarEncuesta,
			newPage(views.EditarEncuesta, grid.data()).with(noticeError, err.Error()))
		return
	}

	if err := s.store.Overwrite(edited); err != nil {
		s.metrics.saves.WithLabelValues(resultFailed).Inc()
		s.logger.Error("overwrite dataset", zap.Error(err))
		s.render(w, http.StatusInternalServerError, views.EditarEncuesta,
			newPage(views.EditarEncuesta, grid.data()).with(noticeError, msgUpdateFailed))
		return
	}
	s.metrics.saves.WithLabelValues(resultSaved).Inc()
	s.metrics.rows.Set(float64(edited.Len()))
	s.logger.Info("dataset overwritten", zap.Int("rows", edited.Len()))
	s.render(w, http.StatusOK, views.EditarEncuesta,
		newPage(views.EditarEncuesta, newEditorData(edited)).with(noticeSuccess, msgUpdated))
}
