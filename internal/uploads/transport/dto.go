package transport

// Target names the entity an upload is attached to. All fields are optional
// multipart form values.
type Target struct {
	EntityType  string
	EntityID    string
	Description string
	ImageType   string
}

// Requested reports whether the client asked for an entity association.
func (t Target) Requested() bool {
	return t.EntityType != "" && t.EntityID != ""
}

// Association reports the outcome of attaching an upload to an entity.
type Association struct {
	Type        string  `json:"type"`
	ID          string  `json:"id"`
	Description *string `json:"description"`
	ImageType   string  `json:"imageType,omitempty"`
	Updated     bool    `json:"updated"`
	Error       string  `json:"error,omitempty"`
}

// File is a stored upload.
type File struct {
	URL               string       `json:"url"`
	PublicID          string       `json:"publicId"`
	OriginalName      string       `json:"originalName"`
	Size              int64        `json:"size"`
	Format            string       `json:"format"`
	ResourceType      string       `json:"resourceType"`
	EntityAssociation *Association `json:"entityAssociation,omitempty"`
}

// ProfileImage is the response to a profile image upload.
type ProfileImage struct {
	ProfileImageURL string `json:"profileImageUrl"`
	PublicID        string `json:"publicId"`
}
