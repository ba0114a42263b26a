// Package extrude implements face extrusion for meshes stored in the
// 24-vertex box layout, where every quad face owns four vertices and
// neighbouring faces carry their own copies of shared corners.
//
// Two pieces do the work. The resolver maps a picked triangle to every
// vertex index that must move with its quad, including the corner copies
// held by adjacent faces, so the mesh does not tear. The controller turns
// per-frame pointer movement into a displacement along the face normal and
// writes it back into the mesh buffer while a gesture is active.
//
// A gesture is a toggle: the first pick on a target begins it, the next pick
// anywhere ends it. Uniform sphere scaling shares the same gesture model.
//
// Nothing here is safe for concurrent use; hosts drive a Controller from a
// single event loop.
package extrude
