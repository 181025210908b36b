// Package style serialises ordered CSS declaration maps into the inline
// `style` attribute form honoured by hosts that strip stylesheets.
package style
