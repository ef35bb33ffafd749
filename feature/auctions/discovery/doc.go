// Package discovery lists the regions, realms and auction houses whose pricing data is aggregated.
package discovery
