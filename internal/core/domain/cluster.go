package domain

import (
	"sort"
	"strings"
	"time"
)

// ClusterSource identifies how a cluster was constructed.
type ClusterSource string

// Available cluster sources.
const (
	// ClusterSourceTag groups documents sharing a tag.
	ClusterSourceTag ClusterSource = "tag"

	// ClusterSourceFolder groups documents in the same vault folder.
	ClusterSourceFolder ClusterSource = "folder"

	// ClusterSourceSimilarity groups documents by embedding-space proximity
	// around a seed document.
	ClusterSourceSimilarity ClusterSource = "similarity"

	// ClusterSourceManual is an explicit user-picked selection.
	ClusterSourceManual ClusterSource = "manual"
)

// IsValid returns true if the cluster source is recognised.
func (s ClusterSource) IsValid() bool {
	switch s {
	case ClusterSourceTag, ClusterSourceFolder, ClusterSourceSimilarity, ClusterSourceManual:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ClusterSource) String() string {
	return string(s)
}

// ClusterMember is one document's membership in a cluster.
type ClusterMember struct {
	// ID is the document ID.
	ID string

	// Path is the vault-relative path.
	Path string

	// Title is the document title.
	Title string

	// Similarity is the cosine similarity to the cluster's reference point,
	// in [0,1]. Attribute-based and seed members carry 1.0.
	Similarity float64
}

// Cluster is a named group of documents sharing a tag, folder or
// embedding-space proximity. Immutable after construction: replace, don't patch.
type Cluster struct {
	// ID is the unique cluster identifier.
	ID string

	// Name is the human-readable cluster name.
	Name string

	// Members are the clustered documents. IDs are unique within a cluster;
	// order is irrelevant. An empty cluster carries Coherence 0.
	Members []ClusterMember

	// Centroid is the mean of member vectors, when vectors were available.
	Centroid []float32

	// Coherence estimates how mutually similar the members are, in [0,1].
	Coherence float64

	// Source records the construction strategy.
	Source ClusterSource

	// CreatedAt is when the cluster was built.
	CreatedAt time.Time
}

// Size returns the number of members.
func (c *Cluster) Size() int {
	return len(c.Members)
}

// IsEmpty returns true if the cluster has no members.
func (c *Cluster) IsEmpty() bool {
	return len(c.Members) == 0
}

// MemberIDs returns the member document IDs in member order.
func (c *Cluster) MemberIDs() []string {
	ids := make([]string, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.ID
	}
	return ids
}

// Key returns a canonical identity for the member set: the sorted member IDs
// joined with '|'. Two clusters over the same documents share a key
// regardless of member order or construction strategy.
func (c *Cluster) Key() string {
	ids := c.MemberIDs()
	sort.Strings(ids)
	return strings.Join(ids, "|")
}
