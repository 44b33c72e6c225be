package wire

import "sync/atomic"

// ActivityKind is the closed set of activity signals the service accepts.
type ActivityKind int

const (
	ActivityTyping ActivityKind = iota + 1
	ActivityChooseContact
	ActivityPlayGame
	ActivityPickLocation
	ActivityRecordAudio
	ActivityRecordRound
	ActivityRecordVideo
	ActivityUploadAudio
	ActivityUploadRound
	ActivityUploadVideo
	ActivityUploadPhoto
	ActivityUploadDocument
	ActivityCancel
)

// Valid reports whether k is a recognized activity kind.
func (k ActivityKind) Valid() bool {
	return k >= ActivityTyping && k <= ActivityCancel
}

// SupportsProgress reports whether the service accepts a progress
// percentage for this kind. Only the upload kinds do.
func (k ActivityKind) SupportsProgress() bool {
	switch k {
	case ActivityUploadAudio, ActivityUploadRound, ActivityUploadVideo,
		ActivityUploadPhoto, ActivityUploadDocument:
		return true
	default:
		return false
	}
}

// String returns the canonical tag for the kind.
func (k ActivityKind) String() string {
	switch k {
	case ActivityTyping:
		return "typing"
	case ActivityChooseContact:
		return "contact"
	case ActivityPlayGame:
		return "game"
	case ActivityPickLocation:
		return "location"
	case ActivityRecordAudio:
		return "record-audio"
	case ActivityRecordRound:
		return "record-round"
	case ActivityRecordVideo:
		return "record-video"
	case ActivityUploadAudio:
		return "audio"
	case ActivityUploadRound:
		return "round"
	case ActivityUploadVideo:
		return "video"
	case ActivityUploadPhoto:
		return "photo"
	case ActivityUploadDocument:
		return "document"
	case ActivityCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Activity is the mutable descriptor of the signal currently being
// broadcast. It is shared by reference between the controller's periodic
// loop (reader) and the progress-reporting caller (writer); the progress
// field is atomic so the loop picks up the latest value at its next send.
type Activity struct {
	Kind ActivityKind

	progress atomic.Int32
}

// NewActivity builds a descriptor for the given kind. Upload kinds are
// seeded with the service's numeric sub-type value (progress 1).
func NewActivity(kind ActivityKind) *Activity {
	a := &Activity{Kind: kind}
	if kind.SupportsProgress() {
		a.progress.Store(1)
	}

	return a
}

// SetProgress records a progress percentage for the next send. It is a
// no-op for kinds that do not support progress.
func (a *Activity) SetProgress(pct int) {
	if !a.Kind.SupportsProgress() {
		return
	}

	a.progress.Store(int32(pct))
}

// Progress returns the last recorded progress percentage.
func (a *Activity) Progress() int {
	return int(a.progress.Load())
}
