// Package repository define las entidades del dominio y las interfaces de
// persistencia que implementan los drivers en internal/store.
//
// Las capas superiores (services, controllers) dependen solo de estas
// interfaces y de los errores sentinela de errors.go.
package repository
