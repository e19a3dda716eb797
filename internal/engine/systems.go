package engine

// Systems resolves a batch of ids or names into enriched system details.
// The whole batch fails on the first unknown reference.
func (n *Navigator) Systems(refs []string) ([]SystemDetail, error) {
	if len(refs) == 0 {
		return nil, invalidQueryf("systems query needs at least one id or name")
	}
	details := make([]SystemDetail, 0, len(refs))
	for _, ref := range refs {
		id, err := n.ResolveSystem(ref)
		if err != nil {
			return nil, err
		}
		detail := SystemDetail{
			SystemRef: n.systemRef(id),
			Neighbors: len(n.Data.Universe.Neighbors(id)),
		}
		if region, ok := n.Data.Regions[n.Data.Universe.Region(id)]; ok {
			detail.RegionName = region.Name
		}
		if constellation, ok := n.Data.Constellations[n.Data.Universe.Constellation(id)]; ok {
			detail.ConstellationName = constellation.Name
		}
		details = append(details, detail)
	}
	return details, nil
}
