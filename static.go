package scrolly

// EnableStaticFallback snaps every animated target to its final state,
// releases pins and the engine's scroll lock. A gate keeps its own lock.
// Later rebuilds stay static.
func (r *Registry) EnableStaticFallback() {
	if r.state == RegistryDisposed {
		return
	}
	if !r.static {
		logger.Info("static presentation enabled")
	}
	r.static = true
	r.applyStatic()
}

// SetReducedMotion engages the static fallback when the reader prefers
// reduced motion. It cannot be turned back off without a new registry.
func (r *Registry) SetReducedMotion(reduced bool) {
	if reduced {
		r.EnableStaticFallback()
	}
}

// applyStatic leaves the document in its end state: horizontal tracks sit
// at rest in normal flow, scrubbed regions at progress 1, toggles completed.
func (r *Registry) applyStatic() {
	for _, h := range r.horizontals {
		h.teardown()
	}
	r.doc.Layout()
	for _, reg := range r.regions {
		reg.finish()
	}
	r.tweener.Finish()
	r.doc.viewport.Unlock(LockEngine)
}
