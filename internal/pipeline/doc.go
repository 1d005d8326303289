// Package pipeline implements the conversion job pipeline: request
// validation, job naming, bounded invocation of the extraction tool, and
// resolution of the artifact the tool left in the working directory.
//
// There is no job queue and no persistence; a job exists only for the
// duration of the request that created it. Correlation across components is
// purely by the uuid filename prefix, which also tags every log line.
package pipeline
