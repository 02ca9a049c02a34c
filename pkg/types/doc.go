// Package types defines the survey schema: the five answer fields, their
// constrained domains, the Response record, the Dataset, configuration, and
// the standard errors shared by the store, the aggregator, and both shells.
package types
