package service

// SourceType says where a service's runnable artifact comes from.
type SourceType string

const (
	SourceImage  SourceType = "image"  // pull a container image
	SourceUpload SourceType = "upload" // build from an uploaded code archive
)

// Source is the artifact variant of a service spec.
type Source struct {
	Type      SourceType
	Image     string // image reference, SourceImage only
	BuildFile string // dockerfile path inside the archive, SourceUpload only
}

func ImageSource(reference string) Source {
	return Source{Type: SourceImage, Image: reference}
}

func UploadSource(buildFile string) Source {
	if buildFile == "" {
		buildFile = "Dockerfile"
	}
	return Source{Type: SourceUpload, BuildFile: buildFile}
}

// Port maps a host port to a container port. Target 0 means "use the
// default" (80) when the payload is built.
type Port struct {
	Published int
	Target    int
}

// Resources are the fixed allocation every service gets. They are policy
// constants, not user input.
type Resources struct {
	MemoryReservation int     `json:"memoryReservation"`
	MemoryLimit       int     `json:"memoryLimit"`
	CPUReservation    float64 `json:"cpuReservation"`
	CPULimit          float64 `json:"cpuLimit"`
}

var DefaultResources = Resources{
	MemoryReservation: 128,
	MemoryLimit:       512,
	CPUReservation:    0.1,
	CPULimit:          1,
}

// Spec is the desired state of one service. It is a value re-derived on
// every invocation and never persisted locally; the panel is the only
// source of truth.
type Spec struct {
	Name    string
	Project string
	Source  Source
	Ports   []Port
	Domains []string
	Mounts  []string
}
