// Package ports defines the boundary interfaces of the engine: the workspace
// manager contract implemented both locally and as a remote proxy, the value
// and plot sinks that consume execution results, and the optional result
// cache. Adapters implement these; calling code depends only on them.
package ports
