// Package heroscrape crawls hero detail and listing pages from a single game
// content site and turns their loosely structured markup into plain-text
// artifacts: hero name, title, numbered skills, named sections and story text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, chardet/, sqlite/).
package heroscrape
