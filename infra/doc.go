// Package infra contains technical adapters such as the InvenTree
// client, the SMTP mailer and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
