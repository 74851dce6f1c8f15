package seed

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/model"
	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
	"github.com/platypussharry/physician-salary-dashboard-sub000/pkg/logger"
)

const (
	chunkSize       = 500
	maxYears        = 35
	yearlyRaise     = 0.012
	startingFactor  = 0.8
	noiseSpread     = 0.4
	minBonusShare   = 0.05
	bonusShareRange = 0.15
	minHours        = 40
	hoursRange      = 30
	daysBack        = 365
)

// Generate returns cfg.Rows synthetic submissions. Rows are produced in
// fixed-size chunks, each from its own seeded source, so the result depends
// only on cfg.Seed and cfg.Rows.
func Generate(ctx context.Context, cfg Config) ([]model.RawSubmission, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now().UTC()
	}
	log := logger.GetOrNop().Named("seed")
	log.Info(ctx, "generating submissions", logger.Int("rows", cfg.Rows), logger.Bool("messy", cfg.Messy))

	rows := make([]model.RawSubmission, cfg.Rows)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for start := 0; start < cfg.Rows; start += chunkSize {
		end := min(start+chunkSize, cfg.Rows)
		g.Go(func() error {
			gen := newGenerator(cfg, uint64(start/chunkSize))
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("generate row %d: %w", i, err)
				}
				rows[i] = gen.row()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info(ctx, "generated submissions", logger.Int("count", len(rows)))
	return rows, nil
}

type generator struct {
	cfg    Config
	src    *rand.ChaCha8
	rng    *rand.Rand
	states []string
}

func newGenerator(cfg Config, chunk uint64) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], cfg.Seed)
	binary.LittleEndian.PutUint64(key[8:], chunk)
	src := rand.NewChaCha8(key)

	var states []string
	for _, r := range []model.Region{model.RegionNortheast, model.RegionMidwest, model.RegionSouth, model.RegionWest} {
		states = append(states, region.States(r)...)
	}
	return &generator{cfg: cfg, src: src, rng: rand.New(src), states: states}
}

func (g *generator) row() model.RawSubmission {
	prof := specialties[g.rng.IntN(len(specialties))]
	prac := practices[g.rng.IntN(len(practices))]
	state := g.states[g.rng.IntN(len(g.states))]
	reg, _ := region.Resolve(state)
	years := g.rng.IntN(maxYears + 1)

	total := prof.median *
		(startingFactor + yearlyRaise*float64(years)) *
		regionFactor[reg] *
		prac.factor *
		(1 - noiseSpread/2 + noiseSpread*g.rng.Float64())
	total = math.Round(total/1000) * 1000
	bonus := math.Round(total * (minBonusShare + bonusShareRange*g.rng.Float64()) / 1000) * 1000
	base := total - bonus

	id, _ := uuid.NewRandomFromReader(g.src)
	r := model.RawSubmission{
		ID:                id.String(),
		Specialty:         prof.name,
		YearsOfExperience: years,
		State:             state,
		PracticeSetting:   prac.labels[0],
		BaseSalary:        base,
		BonusIncentives:   bonus,
		TotalCompensation: total,
		HoursPerWeek:      minHours + g.rng.IntN(hoursRange+1),
		SatisfactionLevel: 1 + g.rng.IntN(5),
		WouldChooseAgain:  g.rng.Float64() < 0.7,
		CreatedAt: g.cfg.Now.
			Add(-time.Duration(g.rng.Int64N(int64(daysBack * 24 * time.Hour)))).
			Format(time.RFC3339),
	}
	if len(prof.subspecialties) > 0 && g.rng.Float64() < 0.4 {
		r.Subspecialty = prof.subspecialties[g.rng.IntN(len(prof.subspecialties))]
	}
	if cs := cities[state]; len(cs) > 0 {
		r.City = cs[g.rng.IntN(len(cs))]
	}
	if g.cfg.Messy {
		g.roughen(&r, prac, state, reg)
	}
	return r
}

// roughen rewrites r the way hand-entered submissions arrive.
func (g *generator) roughen(r *model.RawSubmission, prac practice, state string, reg model.Region) {
	switch p := g.rng.Float64(); {
	case p < 0.2:
		if code, ok := region.Code(state); ok {
			r.State = code
		}
	case p < 0.3:
		r.State = nil
		r.GeographicLocation = string(reg)
	}
	r.PracticeSetting = prac.labels[g.rng.IntN(len(prac.labels))]

	switch p := g.rng.Float64(); {
	case p < 0.15:
		r.TotalCompensation = currency(r.TotalCompensation.(float64))
		r.BaseSalary = currency(r.BaseSalary.(float64))
	case p < 0.2:
		r.TotalCompensation = nil
	case p < 0.23:
		r.TotalCompensation = "N/A"
		r.BaseSalary = nil
		r.BonusIncentives = nil
	}

	if g.rng.Float64() < 0.1 {
		r.SatisfactionLevel = nil
	}
	if g.rng.Float64() < 0.5 {
		if r.WouldChooseAgain == true {
			r.WouldChooseAgain = "Yes"
		} else {
			r.WouldChooseAgain = "No"
		}
	}
}

// currency formats v as "$1,234,000".
func currency(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	out := make([]byte, 0, len(s)+len(s)/3+1)
	out = append(out, '$')
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return string(out)
}
