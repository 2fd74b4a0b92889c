package labels

import "sort"

// Standard label keys, namespaced with the cloudwait.io prefix.
const (
	// KeyManagedBy identifies the tool that created the resource
	KeyManagedBy = "cloudwait.io/managed-by"

	// KeySource identifies the disk or server a snapshot was taken from
	KeySource = "cloudwait.io/source"

	// KeyCorrelationID ties the resource to the operation that created it
	KeyCorrelationID = "cloudwait.io/correlation-id"
)

// ManagedByCloudwait is the default KeyManagedBy value.
const ManagedByCloudwait = "cloudwait"

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a builder with the managed-by label pre-set.
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyManagedBy: ManagedByCloudwait,
		},
	}
}

// WithSource adds the source label. Empty values are skipped.
func (lb *LabelBuilder) WithSource(source string) *LabelBuilder {
	if source != "" {
		lb.labels[KeySource] = source
	}
	return lb
}

// WithCorrelationID adds the correlation ID label. Empty values are skipped.
func (lb *LabelBuilder) WithCorrelationID(id string) *LabelBuilder {
	if id != "" {
		lb.labels[KeyCorrelationID] = id
	}
	return lb
}

// WithManagedBy sets who manages this resource.
func (lb *LabelBuilder) WithManagedBy(manager string) *LabelBuilder {
	lb.labels[KeyManagedBy] = manager
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	for k, v := range extra {
		lb.labels[k] = v
	}
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// Keys returns the label keys in sorted order, for deterministic tag lists.
func (lb *LabelBuilder) Keys() []string {
	keys := make([]string, 0, len(lb.labels))
	for k := range lb.labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SelectorManaged returns a label selector for every resource cloudwait
// created.
func SelectorManaged() string {
	return KeyManagedBy + "=" + ManagedByCloudwait
}
