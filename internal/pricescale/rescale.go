package pricescale

// SetDomain replaces the raw domain in place (e.g. after an autoscale),
// preserving mode/margins/inverted/transformed-base.
func (ps *PriceScale) SetDomain(min, max float64) error {
	prevMin, prevMax := ps.domainMin, ps.domainMax
	ps.domainMin, ps.domainMax = min, max
	if err := ps.validateDomain(); err != nil {
		ps.domainMin, ps.domainMax = prevMin, prevMax
		return err
	}
	return nil
}
