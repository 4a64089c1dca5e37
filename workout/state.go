package workout

import (
	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/mesg"
)

// State is the working memory of one parse. Build a new one per file;
// states are never reset or shared.
type State struct {
	Session              *mesg.Session
	Sport                *mesg.Sport
	UserProfile          *mesg.UserProfile
	PhysiologicalMetrics *mesg.PhysiologicalMetrics

	TimesInZone []*mesg.TimeInZone
	Sets        []*mesg.Set
	Laps        []*mesg.Lap
	TrackPoints []*mesg.TrackPoint
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// LapsHaveSwolf reports whether any lap carries an average SWOLF.
func (s *State) LapsHaveSwolf() bool {
	for _, l := range s.Laps {
		if l.AvgSwolf != nil {
			return true
		}
	}
	return false
}

// HasGPS reports whether any track point carries a position.
func (s *State) HasGPS() bool {
	for _, tp := range s.TrackPoints {
		if tp.Position != nil {
			return true
		}
	}
	return false
}

// Accumulate files rec into st and reports whether its kind was handled.
// Session, Sport and UserProfile keep the first record seen; duplicates are
// logged and dropped. PhysiologicalMetrics keeps the last one unless the
// parser was built WithUniformSingletons.
func (p *Parser) Accumulate(st *State, rec mesg.Record) bool {
	switch r := rec.(type) {
	case *mesg.Session:
		if st.Session != nil {
			p.duplicate(r)
			return true
		}
		st.Session = r
	case *mesg.Sport:
		if st.Sport != nil {
			p.duplicate(r)
			return true
		}
		st.Sport = r
	case *mesg.UserProfile:
		if st.UserProfile != nil {
			p.duplicate(r)
			return true
		}
		st.UserProfile = r
	case *mesg.PhysiologicalMetrics:
		if p.uniformSingletons && st.PhysiologicalMetrics != nil {
			p.duplicate(r)
			return true
		}
		st.PhysiologicalMetrics = r
	case *mesg.TimeInZone:
		st.TimesInZone = append(st.TimesInZone, r)
	case *mesg.Set:
		st.Sets = append(st.Sets, r)
	case *mesg.Lap:
		st.Laps = append(st.Laps, r)
	case *mesg.TrackPoint:
		st.TrackPoints = append(st.TrackPoints, r)
	case *mesg.Unrecognized:
		p.logger.Debug("unhandled record", zap.Uint16("global", r.GlobalMessageNum))
		return false
	default:
		p.logger.Debug("unhandled record", zap.Stringer("kind", rec.Kind()))
		return false
	}
	return true
}

func (p *Parser) duplicate(rec mesg.Record) {
	p.logger.Warn("multiple records not supported, keeping the first",
		zap.Stringer("kind", rec.Kind()))
}
