package volume

import "github.com/lumenpath/lumenpath/pkg/bsdf"

const maxVolumeStack = 8

// PathVolumeInfo tracks the nested media a path is currently inside,
// ordered so the highest-priority entry always determines the governing
// volume at a point where multiple media overlap.
type PathVolumeInfo struct {
	volumes [maxVolumeStack]Volume
	count   int
	current Volume
}

// Add pushes a volume onto the stack and asserts the fixed-capacity
// invariant rather than growing past it, since overflow means an authoring
// error (too many nested overlapping media) rather than a case to handle
// gracefully.
func (p *PathVolumeInfo) Add(v Volume) {
	if p.count >= maxVolumeStack {
		panic("volume: PathVolumeInfo stack overflow, too many nested volumes")
	}
	p.volumes[p.count] = v
	p.count++
	p.recomputeCurrent()
}

// Remove drops the first occurrence of v from the stack.
func (p *PathVolumeInfo) Remove(v Volume) {
	for i := 0; i < p.count; i++ {
		if p.volumes[i] == v {
			copy(p.volumes[i:p.count-1], p.volumes[i+1:p.count])
			p.count--
			p.volumes[p.count] = nil
			break
		}
	}
	p.recomputeCurrent()
}

// SimulateAdd reports what the governing volume would become after Add(v)
// without mutating the stack.
func (p *PathVolumeInfo) SimulateAdd(v Volume) Volume {
	best := p.current
	if best == nil || v.Priority() > best.Priority() {
		best = v
	}
	return best
}

// SimulateRemove reports what the governing volume would become after
// Remove(v) without mutating the stack.
func (p *PathVolumeInfo) SimulateRemove(v Volume) Volume {
	var best Volume
	for i := 0; i < p.count; i++ {
		if p.volumes[i] == v {
			continue
		}
		if best == nil || p.volumes[i].Priority() > best.Priority() {
			best = p.volumes[i]
		}
	}
	return best
}

func (p *PathVolumeInfo) recomputeCurrent() {
	var best Volume
	for i := 0; i < p.count; i++ {
		if best == nil || p.volumes[i].Priority() > best.Priority() {
			best = p.volumes[i]
		}
	}
	p.current = best
}

// Current returns the highest-priority volume currently enclosing the path,
// or nil if the path is in the scene's default (vacuum) medium.
func (p *PathVolumeInfo) Current() Volume { return p.current }

// asVolume narrows the BSDF contract's minimal Volume view (priority only)
// back to the full volume.Volume the concrete medium actually implements.
func asVolume(v bsdf.Volume) Volume {
	if v == nil {
		return nil
	}
	full, ok := v.(Volume)
	if !ok {
		panic("volume: hit-point volume does not implement volume.Volume")
	}
	return full
}

// ContinueToTrace implements the priority rule governing whether a TRANSMIT
// event at a surface is honored or overridden by volume nesting: entering a
// lower-priority volume than the one currently governing, or leaving a
// volume whose removal would not restore the prior governing volume,
// overrides the surface and the ray continues through it as pass-through.
func (p *PathVolumeInfo) ContinueToTrace(mat bsdf.Material, hit bsdf.HitPoint) bool {
	entering := hit.FrontFace
	var candidate Volume
	if entering {
		candidate = asVolume(hit.InteriorVolume)
	} else {
		candidate = asVolume(hit.ExteriorVolume)
	}
	if candidate == nil {
		return false
	}

	if entering {
		would := p.SimulateAdd(candidate)
		return would != candidate
	}
	would := p.SimulateRemove(candidate)
	return would != p.current
}

// Update advances the volume stack across a TRANSMIT event at a surface,
// adding the interior volume on entry or removing it on exit. Non-transmit
// events leave the stack untouched.
func (p *PathVolumeInfo) Update(event bsdf.Event, hit bsdf.HitPoint) {
	if !event.Has(bsdf.Transmit) {
		return
	}
	if hit.FrontFace {
		if v := asVolume(hit.InteriorVolume); v != nil {
			p.Add(v)
		}
	} else {
		if v := asVolume(hit.ExteriorVolume); v != nil {
			p.Remove(v)
		}
	}
}
