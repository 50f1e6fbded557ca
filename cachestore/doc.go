// Component for caching small string values (spam verdicts, serialized metadata) with a fixed TTL and purging.
//
// Includes an interface and implementations using redis and in-process memory.
//
// The moderation pipeline uses this to avoid re-submitting identical comments to external spam checking services.
package cachestore
