// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package render

// Mapping is one entry of the plan.
type Mapping struct {
	Target     Target
	Renderable Renderable
}

// plan is an ordered target -> renderable mapping keyed by target identity.
// It is not safe for concurrent use; the pipeline guards it with its plan lock.
type plan struct {
	entries []Mapping
}

func (p *plan) find(t Target) int {
	for i, e := range p.entries {
		if e.Target == t {
			return i
		}
	}
	return -1
}

// set overwrites the entry keyed by t in place, or appends a new one.
func (p *plan) set(t Target, r Renderable) {
	if i := p.find(t); i >= 0 {
		p.entries[i].Renderable = r
		return
	}
	p.entries = append(p.entries, Mapping{Target: t, Renderable: r})
}

func (p *plan) removeAt(i int) {
	copy(p.entries[i:], p.entries[i+1:])
	p.entries[len(p.entries)-1] = Mapping{}
	p.entries = p.entries[:len(p.entries)-1]
}

// snapshot returns a copy of the entries that later mutations do not affect.
func (p *plan) snapshot() []Mapping {
	out := make([]Mapping, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *plan) size() int {
	return len(p.entries)
}
