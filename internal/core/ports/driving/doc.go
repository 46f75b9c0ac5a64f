// Package driving declares the operations medrfq offers its front ends.
// internal/core/services implements them.
package driving
