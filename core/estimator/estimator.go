// Package estimator orchestrates the cost model: it expands the input
// instance into comparison families, plans the pricing lookups, and folds
// the collected facts into the flat report map the renderers consume.
package estimator

import (
	"fmt"

	"go.uber.org/zap"

	"rds-cost/core/catalog"
	"rds-cost/core/factstore"
	"rds-cost/core/types"
	"rds-cost/internal/errors"
	"rds-cost/internal/logging"
)

// DefaultEngine is assumed when neither flag nor profile names one.
const DefaultEngine = "oracle-ee"

// DefaultGrowthRatePercent is assumed when the profile has no growth history.
const DefaultGrowthRatePercent = 15.0

// SGABufferRatePercent is the headroom added on top of the recommended SGA
// when sizing an instance from the SGA advisor output.
const SGABufferRatePercent = 20.0

// Inputs are the command-line arguments of one estimation run. Profile
// fields fill any gaps; flags win when both are present.
type Inputs struct {
	Region              string
	Engine              string
	CurrentInstance     string
	RecommendedInstance string
	SGAInstance         string
	OnPremAnnualCost    *float64
}

// Estimator drives one estimation run against a fact store.
type Estimator struct {
	store  *factstore.Store
	logger *zap.Logger

	region   string
	engine   string
	specBase string
	sgaBase  string
	onPrem   *float64
}

// New merges inputs with the store's profile and returns an estimator.
func New(inputs Inputs, store *factstore.Store) *Estimator {
	p := store.Profile()

	e := &Estimator{
		store:    store,
		logger:   logging.Named("estimator"),
		region:   inputs.Region,
		engine:   inputs.Engine,
		specBase: inputs.RecommendedInstance,
		sgaBase:  inputs.SGAInstance,
		onPrem:   inputs.OnPremAnnualCost,
	}

	if e.specBase == "" {
		e.specBase = p.RecommendedInstance
	}
	if e.specBase == "" {
		if inputs.CurrentInstance != "" {
			e.specBase = inputs.CurrentInstance
		} else {
			e.specBase = p.CurrentInstance
		}
	}
	if e.sgaBase == "" {
		e.sgaBase = p.SGAInstance
	}
	if e.onPrem == nil {
		e.onPrem = p.OnPremAnnualCost
	}
	if p.TargetEngine != "" {
		e.engine = p.TargetEngine
	}
	if e.engine == "" {
		e.engine = DefaultEngine
	}

	return e
}

// Engine returns the effective target engine.
func (e *Estimator) Engine() string {
	return e.engine
}

// Validate rejects baseline inputs the model cannot price.
func (e *Estimator) Validate() error {
	p := e.store.Profile()

	if p.Server.DBSizeGB != nil && *p.Server.DBSizeGB <= 0 {
		return errors.Inputf("db size must be positive, got %g GB", *p.Server.DBSizeGB)
	}

	rate := e.growthRate()
	if rate < 0 || rate >= 1 {
		return errors.Inputf("yearly growth rate must be in [0%%, 100%%), got %g%%", rate*100)
	}

	if e.onPrem != nil && *e.onPrem <= 0 {
		return errors.Inputf("on-prem annual cost must be positive, got %g", *e.onPrem)
	}

	if e.specBase == "" && e.sgaBase == "" {
		return errors.Input("no instance to estimate: give --current-instance, --recommended-instance or a profile that names one")
	}

	return nil
}

// growthRate returns the effective yearly growth rate as a fraction.
func (e *Estimator) growthRate() float64 {
	p := e.store.Profile()
	if p.Growth.YearlyGrowthRatePercent != nil {
		return *p.Growth.YearlyGrowthRatePercent / 100
	}
	return DefaultGrowthRatePercent / 100
}

func (e *Estimator) dbSizeGB() float64 {
	p := e.store.Profile()
	if p.Server.DBSizeGB != nil {
		return *p.Server.DBSizeGB
	}
	return 0
}

// resolveFamilyPair picks the base family of instanceType plus at most one
// alternative from the same category, in catalog order. Graviton families
// are skipped for licensed engines, which cannot run on them.
func (e *Estimator) resolveFamilyPair(instanceType string) []string {
	if instanceType == "" {
		return nil
	}
	family, _, ok := catalog.Parse(instanceType)
	if !ok {
		e.logger.Warn("unparseable instance type, no family expansion",
			zap.String("instance_type", instanceType))
		return nil
	}

	licensed := types.IsLicensedEngine(e.engine)
	pair := []string{family}
	for _, fam := range catalog.SameCategoryFamilies(family) {
		if fam == family {
			continue
		}
		if licensed && catalog.IsGraviton(fam) {
			continue
		}
		pair = append(pair, fam)
		if len(pair) >= 2 {
			break
		}
	}
	return pair
}

// Families returns the report's comparison families: family A is always
// present, family B may be empty.
func (e *Estimator) Families() (familyA, familyB string) {
	pair := e.resolveFamilyPair(e.specBase)
	if len(pair) == 0 {
		return "r6i", ""
	}
	familyA = pair[0]
	if len(pair) > 1 {
		familyB = pair[1]
	}
	return familyA, familyB
}

func (e *Estimator) familyList() []string {
	a, b := e.Families()
	families := []string{a}
	if b != "" {
		families = append(families, b)
	}
	return families
}

// specInstances maps each comparison family to the size-based candidate:
// the base instance in its own family, same-size variants elsewhere.
func (e *Estimator) specInstances() map[string]string {
	return e.sameSizeVariants(e.specBase)
}

// sgaInstances maps each comparison family to the SGA-based candidate.
// An explicit SGA instance expands by size like the spec path; otherwise
// the recommended SGA plus buffer picks the smallest fitting rung per family.
func (e *Estimator) sgaInstances() map[string]string {
	if e.sgaBase != "" {
		return e.sameSizeVariants(e.sgaBase)
	}

	p := e.store.Profile()
	if p.SGA.RecommendedGB == nil {
		return map[string]string{}
	}

	needGB := *p.SGA.RecommendedGB * (1 + SGABufferRatePercent/100)
	out := make(map[string]string)
	for _, fam := range e.familyList() {
		if inst := catalog.SmallestFitting(fam, needGB); inst != "" {
			out[fam] = inst
		}
	}
	return out
}

func (e *Estimator) sameSizeVariants(base string) map[string]string {
	out := make(map[string]string)
	if base == "" {
		return out
	}
	baseFamily, size, ok := catalog.Parse(base)
	if !ok {
		return out
	}

	out[baseFamily] = base
	for _, fam := range e.resolveFamilyPair(base) {
		if fam != baseFamily {
			out[fam] = fmt.Sprintf("db.%s.%s", fam, size)
		}
	}
	return out
}

// PlanSpecs lists every (instance, deployment, strategy) the collector must
// price: both deployments per candidate instance for the replatform path,
// plus the Aurora PostgreSQL refactoring path for licensed engines.
func (e *Estimator) PlanSpecs() []types.InstanceSpec {
	targets := make(map[string]bool)
	ordered := make([]string, 0, 8)
	add := func(inst string) {
		if inst != "" && !targets[inst] {
			targets[inst] = true
			ordered = append(ordered, inst)
		}
	}
	spec := e.specInstances()
	sga := e.sgaInstances()
	for _, fam := range e.familyList() {
		add(spec[fam])
	}
	for _, fam := range e.familyList() {
		add(sga[fam])
	}

	var specs []types.InstanceSpec
	for _, inst := range ordered {
		for _, deploy := range types.Deployments() {
			specs = append(specs, types.InstanceSpec{
				InstanceType: inst,
				Region:       e.region,
				Engine:       e.engine,
				Strategy:     types.StrategyReplatform,
				Deployment:   deploy,
			})
		}
	}

	if types.IsLicensedEngine(e.engine) {
		for _, inst := range ordered {
			for _, deploy := range types.Deployments() {
				specs = append(specs, types.InstanceSpec{
					InstanceType: inst,
					Region:       e.region,
					Engine:       types.RefactoringEngine,
					Strategy:     types.StrategyRefactoring,
					Deployment:   deploy,
				})
			}
		}
	}

	e.logger.Info("planned pricing lookups",
		zap.Int("specs", len(specs)),
		zap.String("engine", e.engine),
		zap.Bool("refactoring", types.IsLicensedEngine(e.engine)))

	return specs
}
