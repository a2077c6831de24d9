// Package types defines the shared data records and interfaces used across
// the container topology manager, including the CloudVision client contract,
// typed projections of provisioning API responses, and per-operation results.
package types
