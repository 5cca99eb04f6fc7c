package filter

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Chip is one removable "active filter" label. For the price chip Value is
// empty and the range is read from the selection.
type Chip struct {
	Section Section
	Value   string
	Label   string
}

// Controller owns the filter state of one mounted widget. It is not safe for
// concurrent use; callers serialise access (the UI event loop does).
type Controller struct {
	id         uuid.UUID
	registry   Registry
	selection  Selection
	visibility Visibility
	emitter    *Emitter
	log        *zap.Logger
}

// Option configures a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	sink Sink
	log  *zap.Logger
}

// WithOnChange registers the consumer of combined filters.
func WithOnChange(sink Sink) Option {
	return func(o *controllerOptions) { o.sink = sink }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *controllerOptions) { o.log = log }
}

// NewController mounts a controller with an empty selection spanning the full
// price bounds. Mounting does not notify the sink.
func NewController(reg Registry, opts ...Option) *Controller {
	var o controllerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if reg.brandIdx == nil {
		opts := []RegistryOption{
			WithBrands(reg.Brands),
			WithStorageOptions(reg.StorageOptions),
			WithRAMOptions(reg.RAMOptions),
			WithPriceStep(reg.PriceStep),
		}
		// zero bounds were never set; keep the defaults
		if reg.Bounds != (PriceBounds{}) {
			opts = append(opts, WithPriceBounds(reg.Bounds.Min, reg.Bounds.Max))
		}
		reg = NewRegistry(opts...)
	}

	id := uuid.New()
	log := o.log.With(zap.String("mount", id.String()))
	log.Debug("filter controller mounted",
		zap.Int("brands", len(reg.Brands)),
		zap.Float64("min", reg.Bounds.Min),
		zap.Float64("max", reg.Bounds.Max))

	return &Controller{
		id:         id,
		registry:   reg,
		selection:  NewSelection(reg.Bounds),
		visibility: DefaultVisibility(),
		emitter:    NewEmitter(o.sink, log),
		log:        log,
	}
}

// apply is the single place where the selection changes. Each call is one
// logical update and produces exactly one notification.
func (c *Controller) apply(op string, next Selection) {
	c.selection = next
	c.log.Debug("selection updated", zap.String("op", op))
	c.emitter.Emit(Derive(c.registry, c.selection))
}

func (c *Controller) ToggleBrand(id string) {
	c.apply("toggleBrand", c.selection.ToggleBrand(id))
}

func (c *Controller) ToggleStorage(v string) {
	c.apply("toggleStorage", c.selection.ToggleStorage(v))
}

func (c *Controller) ToggleRAM(v string) {
	c.apply("toggleRam", c.selection.ToggleRAM(v))
}

// Toggle dispatches to the toggle for a list section. Price is ignored.
func (c *Controller) Toggle(sec Section, v string) {
	switch sec {
	case SectionBrands:
		c.ToggleBrand(v)
	case SectionStorage:
		c.ToggleStorage(v)
	case SectionRAM:
		c.ToggleRAM(v)
	}
}

// SetPriceRange stores the range after clamping it into the registry bounds.
func (c *Controller) SetPriceRange(low, high float64) {
	c.apply("setPriceRange", c.selection.WithPriceRange(low, high, c.registry.Bounds))
}

// NudgePrice moves the low and high handles by whole price steps.
func (c *Controller) NudgePrice(lowSteps, highSteps int) {
	p := c.selection.PriceRange()
	step := c.registry.PriceStep
	c.SetPriceRange(p.Low+float64(lowSteps)*step, p.High+float64(highSteps)*step)
}

// ClearAll resets every facet in one update.
func (c *Controller) ClearAll() {
	c.apply("clearAll", c.selection.Cleared(c.registry.Bounds))
}

// RemoveChip undoes the selection a chip stands for.
func (c *Controller) RemoveChip(chip Chip) {
	if chip.Section == SectionPrice {
		c.SetPriceRange(c.registry.Bounds.Min, c.registry.Bounds.Max)
		return
	}
	c.Toggle(chip.Section, chip.Value)
}

// ToggleSection flips the expanded state of one section. It never notifies.
func (c *Controller) ToggleSection(s Section) {
	c.visibility = c.visibility.Toggled(s)
}

func (c *Controller) Expanded(s Section) bool {
	return c.visibility.Expanded(s)
}

func (c *Controller) HasActiveFilters() bool {
	return c.selection.HasActive(c.registry.Bounds)
}

// ActiveCount is the number shown on the overlay trigger.
func (c *Controller) ActiveCount() int {
	return c.selection.Count()
}

// Filter returns the current combined filter.
func (c *Controller) Filter() CombinedFilter {
	return Derive(c.registry, c.selection)
}

// Chips lists the active filters in registry order, price last.
func (c *Controller) Chips() []Chip {
	var chips []Chip
	for _, sec := range []Section{SectionBrands, SectionStorage, SectionRAM} {
		var values []string
		switch sec {
		case SectionBrands:
			values = c.selection.brands.ordered(c.registry.Options(sec))
		case SectionStorage:
			values = c.selection.storage.ordered(c.registry.StorageOptions)
		case SectionRAM:
			values = c.selection.ram.ordered(c.registry.RAMOptions)
		}
		for _, v := range values {
			label := v
			if sec == SectionBrands {
				label = c.registry.BrandName(v)
			}
			chips = append(chips, Chip{Section: sec, Value: v, Label: label})
		}
	}
	p := c.selection.PriceRange()
	if p.Low > c.registry.Bounds.Min || p.High < c.registry.Bounds.Max {
		chips = append(chips, Chip{Section: SectionPrice, Label: SectionPrice.Title()})
	}
	return chips
}

func (c *Controller) ID() uuid.UUID          { return c.id }
func (c *Controller) Registry() Registry     { return c.registry }
func (c *Controller) Selection() Selection   { return c.selection }
func (c *Controller) Visibility() Visibility { return c.visibility }

// Notifications returns how many combined filters reached the sink.
func (c *Controller) Notifications() int {
	return c.emitter.Emitted()
}
