package skillstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"osucard-backend/lib/scrapers/osuskills"
	"time"
)

// Store keeps a history of skill reports, at most one per user per day.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type Snapshot struct {
	Time   time.Time
	Report osuskills.SkillReport
}

// Push records a report taken at `at`, replacing any report already
// recorded for the same user on the same (UTC) day.
func (s Store) Push(ctx context.Context, username string, at time.Time, report osuskills.SkillReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	day := at.UTC()
	startOfToday := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).Unix()
	startOfTomorrow := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, time.UTC).Unix()

	_, err = tx.ExecContext(
		ctx,
		`delete from skill_value where snapshot_id in (
			select id from skill_snapshot
			where username = ? and taken_at >= ? and taken_at < ?
		)`,
		username, startOfToday, startOfTomorrow,
	)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(
		ctx,
		`delete from skill_snapshot where username = ? and taken_at >= ? and taken_at < ?`,
		username, startOfToday, startOfTomorrow,
	)
	if err != nil {
		return err
	}

	tags := report.Tags
	if tags == nil {
		tags = []string{}
	}
	serializedTags, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(
		ctx,
		`insert into skill_snapshot(username, taken_at, tags) values (?, ?, ?)`,
		username, at.Unix(), string(serializedTags),
	)
	if err != nil {
		return err
	}
	snapshotId, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for name, skill := range report.Skills {
		_, err = tx.ExecContext(
			ctx,
			`insert into skill_value(snapshot_id, skill, value, global_rank, country_rank)
			values (?, ?, ?, ?, ?)`,
			snapshotId, name, skill.Value, skill.GlobalRank, skill.CountryRank,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Pull returns every snapshot of a user, oldest first.
func (s Store) Pull(ctx context.Context, username string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select s.id, s.taken_at, s.tags, v.skill, v.value, v.global_rank, v.country_rank
		from skill_snapshot s
		inner join skill_value v on v.snapshot_id = s.id
		where s.username = ?
		order by s.taken_at asc, s.id asc`,
		username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Snapshot
	lastId := int64(-1)
	for rows.Next() {
		var (
			id, takenAt int64
			tags, name  string
			value       int
			globalRank  int
			countryRank int
		)
		err := rows.Scan(&id, &takenAt, &tags, &name, &value, &globalRank, &countryRank)
		if err != nil {
			return nil, err
		}

		if id != lastId {
			snapshot := Snapshot{
				Time: time.Unix(takenAt, 0).UTC(),
				Report: osuskills.SkillReport{
					Skills: map[string]osuskills.Skill{},
					Tags:   []string{},
				},
			}
			err = json.Unmarshal([]byte(tags), &snapshot.Report.Tags)
			if err != nil {
				slog.WarnContext(ctx, "failed to decode snapshot tags", "snapshot_id", id, "err", err)
			}
			result = append(result, snapshot)
			lastId = id
		}

		result[len(result)-1].Report.Skills[name] = osuskills.Skill{
			Value:       value,
			GlobalRank:  globalRank,
			CountryRank: countryRank,
			Percent:     osuskills.Percent(value),
		}
	}

	return result, rows.Err()
}
