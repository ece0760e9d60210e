package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/session"
	"github.com/abhisek/probatequiz/internal/tierinfo"
)

// errNotFinished is returned when an explanation is requested too early.
var errNotFinished = errors.New("quiz not finished yet")

// View is the client-facing picture of a session.
type View struct {
	ID       string           `json:"id"`
	Phase    string           `json:"phase"`
	Index    int              `json:"index"`
	Progress session.Progress `json:"progress"`

	// Question and Answer describe the current question while active.
	Question *quiz.Question `json:"question,omitempty"`
	Answer   *quiz.Answer   `json:"answer,omitempty"`

	Result *scoring.Result `json:"result,omitempty"`
}

// StepView is the reply to a navigation call.
type StepView struct {
	View
	Moved bool `json:"moved"`

	// AutoAdvance tells the client to show the selection briefly and then
	// call next.
	AutoAdvance bool `json:"autoAdvance"`
}

func viewOf(s *session.Session) View {
	v := View{
		ID:       s.ID,
		Phase:    s.Phase().String(),
		Index:    s.Index(),
		Progress: s.Progress(),
	}
	if res, ok := s.Result(); ok {
		v.Result = &res
		return v
	}
	q := s.Current()
	v.Question = &q
	if a, ok := s.Recorded(q.ID); ok {
		v.Answer = &a
	}
	return v
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": s.catalog.Questions()})
}

func (s *Server) outcomes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"outcomes":   tierinfo.All(),
		"comparison": tierinfo.Comparison(),
	})
}

type scoreRequest struct {
	Answers quiz.Snapshot `json:"answers"`
}

func (s *Server) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, s.engine.Score(req.Answers))
}

func (s *Server) createSession(c *gin.Context) {
	sess := session.New(s.catalog, s.engine)
	if err := s.registry.Create(c.Request.Context(), sess.State()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewOf(sess))
}

func (s *Server) getSession(c *gin.Context) {
	sess, err := s.load(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, viewOf(sess))
}

type answerRequest struct {
	Value *quiz.Answer `json:"value"`
}

func (s *Server) answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	if req.Value == nil {
		abort(c, http.StatusBadRequest, fmt.Errorf("value is required"))
		return
	}
	s.navigate(c, func(sess *session.Session) (session.Step, error) {
		return sess.Answer(*req.Value)
	})
}

func (s *Server) next(c *gin.Context) {
	s.navigate(c, (*session.Session).Next)
}

func (s *Server) back(c *gin.Context) {
	s.navigate(c, (*session.Session).Back)
}

func (s *Server) submit(c *gin.Context) {
	var contact session.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	s.navigate(c, func(sess *session.Session) (session.Step, error) {
		return sess.Submit(contact)
	})
}

func (s *Server) explanation(c *gin.Context) {
	sess, err := s.load(c)
	if err != nil {
		fail(c, err)
		return
	}
	res, ok := sess.Result()
	if !ok {
		fail(c, errNotFinished)
		return
	}
	c.JSON(http.StatusOK, s.advisor.Explain(c.Request.Context(), sess.Answers(), res))
}

// navigate applies op to the session under the registry's exclusive
// update. A step that finishes the session hands it off for persistence.
func (s *Server) navigate(c *gin.Context, op func(*session.Session) (session.Step, error)) {
	var (
		out  StepView
		done *session.Session
	)
	err := s.registry.Update(c.Request.Context(), c.Param("id"), func(st *session.State) error {
		sess, err := session.Restore(s.catalog, s.engine, *st)
		if err != nil {
			return err
		}
		step, err := op(sess)
		if err != nil {
			return err
		}
		*st = sess.State()
		out = StepView{
			View:        viewOf(sess),
			Moved:       step.Kind == session.StepMoved,
			AutoAdvance: step.AutoAdvance,
		}
		if step.Kind == session.StepFinished {
			done = sess
		}
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}
	if done != nil {
		s.handoff(c, done)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handoff(c *gin.Context, sess *session.Session) {
	if s.recorder == nil {
		return
	}
	sub, err := sess.Submission()
	if err != nil {
		log.Warn().Err(err).Str("session", sess.ID).Msg("no submission to hand off")
		return
	}
	done := session.Handoff(c.Request.Context(), s.recorder, sub, s.handoffTimeout)
	go func() {
		err := <-done
		if err != nil {
			log.Warn().Err(err).Str("session", sub.SessionID).Msg("assessment not saved")
		} else {
			log.Info().Str("session", sub.SessionID).Str("outcome", string(sub.Result.Primary)).Msg("assessment saved")
		}
		if s.handoffs != nil {
			s.handoffs <- err
		}
	}()
}

func (s *Server) load(c *gin.Context) (*session.Session, error) {
	st, err := s.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	return session.Restore(s.catalog, s.engine, st)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoAnswer),
		errors.Is(err, session.ErrAnswerShape),
		errors.Is(err, session.ErrInvalidContact):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrFinished),
		errors.Is(err, session.ErrNotForm),
		errors.Is(err, session.ErrAtStart),
		errors.Is(err, errNotFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	abort(c, status, err)
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
