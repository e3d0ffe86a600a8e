// Package common contains shared constants and the error taxonomy used across
// crudkeeper components.
package common

// IDField is the JSON field name the remote collection store uses for the
// server-assigned record identifier.
const IDField = "_id"

// ContentTypeJSON is sent with every request that carries a body.
const ContentTypeJSON = "application/json"
