package flycam

import (
	"sort"

	"github.com/google/uuid"
)

type CameraId string

type rigEntry struct {
	camera    *DebugCamera
	transform CameraTransform
}

// Rig owns the attached debug cameras and their last projected transforms.
type Rig struct {
	entries map[CameraId]*rigEntry
}

func NewRig() *Rig {
	return &Rig{entries: make(map[CameraId]*rigEntry)}
}

// Attach validates cam and takes ownership of it.
func (r *Rig) Attach(cam *DebugCamera) (CameraId, error) {
	if err := cam.Validate(); err != nil {
		return "", err
	}
	id := CameraId(uuid.NewString())
	r.entries[id] = &rigEntry{camera: cam, transform: ProjectPose(cam)}
	return id, nil
}

func (r *Rig) Detach(id CameraId) bool {
	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

func (r *Rig) Camera(id CameraId) (*DebugCamera, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.camera, true
}

// Transform is the pose projected at the end of the last update that had an
// active device class, or at attach time.
func (r *Rig) Transform(id CameraId) (CameraTransform, bool) {
	e, ok := r.entries[id]
	if !ok {
		return CameraTransform{}, false
	}
	return e.transform, true
}

func (r *Rig) Ids() []CameraId {
	ids := make([]CameraId, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Rig) Len() int {
	return len(r.entries)
}

// Update advances every attached camera one frame, then projects their
// poses. Projection is skipped while both device classes are off, which
// leaves the host free to drive the transforms itself.
func (r *Rig) Update(ctrl *Controller, in InputSnapshot, tm *Time) {
	cams := make([]*DebugCamera, 0, len(r.entries))
	for _, e := range r.entries {
		cams = append(cams, e.camera)
	}
	ctrl.Update(in, tm, cams...)

	if !ctrl.Config().Active.Any() {
		return
	}
	for _, e := range r.entries {
		e.transform = ProjectPose(e.camera)
	}
}
