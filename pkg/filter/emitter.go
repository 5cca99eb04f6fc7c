package filter

import "go.uber.org/zap"

// Sink receives the combined filter after every logical update.
type Sink func(CombinedFilter)

// Emitter delivers combined filters to an optional sink.
type Emitter struct {
	sink    Sink
	log     *zap.Logger
	emitted int
}

// NewEmitter returns an emitter for sink. Both arguments may be nil.
func NewEmitter(sink Sink, log *zap.Logger) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Emitter{sink: sink, log: log}
}

// Emit hands f to the sink. Identical consecutive payloads are delivered too.
func (e *Emitter) Emit(f CombinedFilter) {
	if e.sink == nil {
		return
	}
	e.emitted++
	e.log.Debug("filter changed",
		zap.Int("seq", e.emitted),
		zap.Strings("brands", f.Brands),
		zap.Strings("storage", f.Storage),
		zap.Strings("ram", f.RAM),
		zap.Float64("priceLow", f.PriceRange.Low),
		zap.Float64("priceHigh", f.PriceRange.High))
	e.sink(f)
}

// Emitted returns how many notifications reached the sink.
func (e *Emitter) Emitted() int {
	return e.emitted
}
