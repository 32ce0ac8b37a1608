// Package config manages user-level settings stored at
// ~/.monogen/config.yaml: the fallback package scope, a fixed libraries
// root, log level and format, and console color. Environment variables
// prefixed MONOGEN_ override the file. Only the front ends read config;
// the generation pipeline receives plain values.
package config
