// Package refs holds the lightweight views of one entity embedded in
// another's responses, and the SQL fragments that populate them as jsonb.
package refs

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Logo     *string   `json:"logo,omitempty"`
	Industry *string   `json:"industry,omitempty"`
}

type Service struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Icon     *string   `json:"icon,omitempty"`
}

type Member struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Position     string    `json:"position"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	Email        *string   `json:"email,omitempty"`
}

type Team struct {
	ID       uuid.UUID `json:"id"`
	TeamName string    `json:"teamName"`
}

type Project struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
	Category  string    `json:"category,omitempty"`
	Status    string    `json:"status,omitempty"`
	Client    *Client   `json:"client,omitempty"`
}

type Post struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Thumbnail     *string    `json:"thumbnail,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
}

const emptyArray = "'[]'::jsonb"

func clientObject(alias string) string {
	return "jsonb_build_object('id', " + alias + ".id, 'name', " + alias + ".name, 'logo', " + alias + ".logo, 'industry', " + alias + ".industry)"
}

// ClientOne selects the client whose id is idExpr, or NULL.
func ClientOne(idExpr string) string {
	return "(SELECT " + clientObject("rc") + " FROM clients rc WHERE rc.id = " + idExpr + ")"
}

// ServicesAny selects the services whose ids are in the uuid[] idsExpr.
func ServicesAny(idsExpr string) string {
	return "COALESCE((SELECT jsonb_agg(jsonb_build_object('id', rs.id, 'name', rs.name, 'category', rs.category, 'icon', rs.icon) ORDER BY rs.name) " +
		"FROM services rs WHERE rs.id = ANY(" + idsExpr + ")), " + emptyArray + ")"
}

func memberObject(alias string) string {
	return "jsonb_build_object('id', " + alias + ".id, 'firstName', " + alias + ".first_name, 'lastName', " + alias + ".last_name, " +
		"'position', " + alias + ".position, 'profileImage', " + alias + ".profile_image, 'email', " + alias + ".email)"
}

// MemberOne selects the team member whose id is idExpr, or NULL.
func MemberOne(idExpr string) string {
	return "(SELECT " + memberObject("rm") + " FROM team_members rm WHERE rm.id = " + idExpr + ")"
}

// MembersAny selects the team members whose ids are in idsExpr.
func MembersAny(idsExpr string) string {
	return "COALESCE((SELECT jsonb_agg(" + memberObject("rm") + " ORDER BY rm.last_name, rm.first_name) " +
		"FROM team_members rm WHERE rm.id = ANY(" + idsExpr + ")), " + emptyArray + ")"
}

// TeamOne selects the team whose id is idExpr, or NULL.
func TeamOne(idExpr string) string {
	return "(SELECT jsonb_build_object('id', rt.id, 'teamName', rt.team_name) FROM teams rt WHERE rt.id = " + idExpr + ")"
}

func projectObject(alias string, withClient bool) string {
	obj := "jsonb_build_object('id', " + alias + ".id, 'title', " + alias + ".title, 'thumbnail', " + alias + ".thumbnail, " +
		"'category', " + alias + ".category, 'status', " + alias + ".status"
	if withClient {
		obj += ", 'client', " + ClientOne(alias+".client_id")
	}
	return obj + ")"
}

// ProjectOne selects the project whose id is idExpr, or NULL.
func ProjectOne(idExpr string) string {
	return "(SELECT " + projectObject("rp", false) + " FROM projects rp WHERE rp.id = " + idExpr + ")"
}

// ProjectsAny selects the projects whose ids are in idsExpr, newest first.
// withClient nests each project's client.
func ProjectsAny(idsExpr string, withClient bool) string {
	return "COALESCE((SELECT jsonb_agg(" + projectObject("rp", withClient) + " ORDER BY rp.start_date DESC) " +
		"FROM projects rp WHERE rp.id = ANY(" + idsExpr + ")), " + emptyArray + ")"
}

// ProjectsWhere selects the projects matching a predicate over alias rp.
func ProjectsWhere(predicate string, withClient bool) string {
	return "COALESCE((SELECT jsonb_agg(" + projectObject("rp", withClient) + " ORDER BY rp.start_date DESC) " +
		"FROM projects rp WHERE " + predicate + "), " + emptyArray + ")"
}

// PostsAny selects the blog posts whose ids are in idsExpr.
func PostsAny(idsExpr string) string {
	return "COALESCE((SELECT jsonb_agg(jsonb_build_object('id', rb.id, 'title', rb.title, 'slug', rb.slug, 'thumbnail', rb.thumbnail, " +
		"'excerpt', rb.excerpt, 'publishedDate', rb.published_date) ORDER BY rb.published_date DESC NULLS LAST) " +
		"FROM blog_posts rb WHERE rb.id = ANY(" + idsExpr + ")), " + emptyArray + ")"
}

// MemberRole is a project team assignment with its member populated.
type MemberRole struct {
	Member       *Member `json:"member"`
	Role         string  `json:"role"`
	Contribution string  `json:"contribution,omitempty"`
}

// MemberRoles expands a jsonb array of {member, role, contribution} entries,
// replacing each member id with the member's view. Unknown members become
// null.
func MemberRoles(assignmentsExpr string) string {
	return "COALESCE((SELECT jsonb_agg(jsonb_build_object('member', CASE WHEN rm.id IS NULL THEN NULL ELSE " + memberObject("rm") + " END, " +
		"'role', x.e->>'role', 'contribution', x.e->>'contribution') ORDER BY x.ord) " +
		"FROM jsonb_array_elements(" + assignmentsExpr + ") WITH ORDINALITY AS x(e, ord) " +
		"LEFT JOIN team_members rm ON rm.id = (x.e->>'member')::uuid), " + emptyArray + ")"
}
