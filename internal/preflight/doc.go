// Package preflight runs environment checks before a clip render:
// external tool availability, staging directory access, and free
// disk space.
package preflight
