//go:build !gcloud

package config

// Validate checks cycle-queue settings for a local run. The scheduler URL
// is optional; an empty value disables scheduling with a warning at
// startup.
func (c *CycleConfig) Validate() error {
	return nil
}
