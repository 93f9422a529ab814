package store

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/tevino/abool/v2"
)

var sweepRunning = abool.NewBool(false)

// StartRetention begins purging expired entries every interval. The
// returned scheduler owns the job; shut it down to stop sweeping.
func (s *Store) StartRetention(every time.Duration) (gocron.Scheduler, error) {
	sch, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	if _, err := sch.NewJob(gocron.DurationJob(every), gocron.NewTask(s.sweep)); err != nil {
		sch.Shutdown()
		return nil, err
	}
	sch.Start()
	return sch, nil
}

// sweep purges one batch of expired entries. Overlapping runs are
// skipped.
func (s *Store) sweep() {
	if sweepRunning.IsSet() {
		return
	}
	sweepRunning.Set()
	defer sweepRunning.UnSet()
	rows, err := s.Expired(2000)
	if err != nil {
		log.Printf("retention: %v", err)
		return
	}
	if len(rows) == 0 {
		return
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	if err := s.Purge(ids); err != nil {
		log.Printf("retention: %v", err)
		return
	}
	log.Printf("retention: purged %d entries", len(ids))
}
