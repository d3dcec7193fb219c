package model

// ScoredTimeFormat is the format used when writing score timestamps into feature properties
const ScoredTimeFormat = "2006-01-02T15:04:05Z" // time.RFC3339, always UTC
