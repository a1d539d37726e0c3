package service

import (
	"github.com/quizdesk/classroom/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionSweeper periodically finalizes quiz sessions whose deadline passed
// without a submission. Expiry itself stays logical; the sweeper only adds
// strict finalization on top.
type SessionSweeper struct {
	sessions QuizSessionService
	cron     *cron.Cron
	spec     string
	enabled  bool
}

func NewSessionSweeper(sessions QuizSessionService, cfg *config.Config) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		cron:     cron.New(),
		spec:     cfg.Sweep.Spec,
		enabled:  cfg.Sweep.Enabled,
	}
}

func (s *SessionSweeper) Start() error {
	if !s.enabled {
		log.Info().Msg("Session sweeper disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("spec", s.spec).Msg("Session sweeper started")
	return nil
}

func (s *SessionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SessionSweeper) sweep() {
	finalized, err := s.sessions.FinalizeExpiredSessions()
	if err != nil {
		log.Error().Err(err).Msg("Session sweep failed")
		return
	}
	if finalized > 0 {
		log.Info().Int("finalized", finalized).Msg("Session sweep finalized expired sessions")
	}
}
