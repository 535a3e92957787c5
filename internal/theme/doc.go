// Package theme loads the CSS used by the dpswitch window.
// Themes are looked up in the user's themes directory first and then among the
// bundled themes, so a user file with a bundled name overrides it.
package theme
