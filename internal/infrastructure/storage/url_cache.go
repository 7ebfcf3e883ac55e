package storage

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signedURLCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qms_signed_url_cache_hits_total",
		Help: "Signed download URLs served from cache.",
	})
	signedURLCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qms_signed_url_cache_misses_total",
		Help: "Signed download URLs that had to be presigned.",
	})
)

type signedURL struct {
	url       string
	expiresAt time.Time
}

// urlCache keeps presigned URLs for less than their validity so a cached
// URL always has time left when handed out.
type urlCache struct {
	lru *expirable.LRU[string, signedURL]
}

func newURLCache(size int, ttl time.Duration) *urlCache {
	return &urlCache{lru: expirable.NewLRU[string, signedURL](size, nil, ttl)}
}

func (c *urlCache) get(key string) (signedURL, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		signedURLCacheHits.Inc()
		return v, true
	}
	signedURLCacheMisses.Inc()
	return signedURL{}, false
}

func (c *urlCache) add(key string, v signedURL) {
	c.lru.Add(key, v)
}

func (c *urlCache) remove(key string) {
	c.lru.Remove(key)
}
