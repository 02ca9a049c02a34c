package web

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// Form messages.
const (
	msgSaved      = "✅ Encuesta guardada exitosamente."
	msgSaveFailed = "No se pudo guardar la encuesta."
)

type question struct {
	Name string
	Text string
}

type formData struct {
	Questions []question
	Tools     []types.Tool
	Answers   []types.Answer
	Scores    []int
	Submit    string
}

// newFormData returns the survey form in its initial state: frequency and
// satisfaction sliders at 3, "Si" selected and difficulty at 1.
func newFormData() formData {
	qs := make([]question, len(types.Fields))
	for i, f := range types.Fields {
		qs[i] = question{Name: f.String(), Text: f.Question()}
	}
	scores := make([]int, 0, int(types.MaxScore))
	for n := types.MinScore; n <= types.MaxScore; n++ {
		scores = append(scores, int(n))
	}
	return formData{
		Questions: qs,
		Tools:     types.Tools,
		Answers:   []types.Answer{types.AnswerYes, types.AnswerNo},
		Scores:    scores,
		Submit:    "Registrar Respuestas",
	}
}

func (s *Server) handleEncuesta(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, views.Encuesta, newPage(views.Encuesta, newFormData()))
}

// handleSubmit appends one response from the form. The form is shown
// again cleared in every case.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	p := newPage(views.Encuesta, newFormData())

	resp, err := parseForm(r)
	if err != nil {
		s.metrics.submissions.WithLabelValues(resultInvalid).Inc()
		s.render(w, http.StatusBadRequest, views.Encuesta, p.with(noticeError, err.Error()))
		return
	}
	if err := s.store.Append(resp); err != nil {
		s.metrics.submissions.WithLabelValues(resultFailed).Inc()
		s.logger.Error("append response", zap.Error(err))
		s.render(w, http.StatusInternalServerError, views.Encuesta, p.with(noticeError, msgSaveFailed))
		return
	}
	s.metrics.submissions.WithLabelValues(resultSaved).Inc()
	s.logger.Info("response recorded", zap.String("tool", string(resp.Tool)))
	s.render(w, http.StatusOK, views.Encuesta, p.with(noticeSuccess, msgSaved))
}

func parseForm(r *http.Request) (types.Response, error) {
	if err := r.ParseForm(); err != nil {
		return types.Response{}, err
	}
	tool, err := types.ParseTool(r.PostForm.Get(types.FieldTool.String()))
	if err != nil {
		return types.Response{}, err
	}
	improved, err := types.ParseAnswer(r.PostForm.Get(types.FieldImproved.String()))
	if err != nil {
		return types.Response{}, err
	}
	var scores [3]int
	for i, f := range []types.Field{types.FieldFrequency, types.FieldQuality, types.FieldDifficulty} {
		raw := r.PostForm.Get(f.String())
		n, err := strconv.Atoi(raw)
		if err != nil {
			return types.Response{}, fmt.Errorf("%w: %s %q", types.ErrInvalidValue, f, raw)
		}
		scores[i] = n
	}
	return types.NewResponse(tool, scores[0], scores[1], improved, scores[2])
}
