// Package schema holds the PostgreSQL table definitions. Statements are
// idempotent and run on every start.
package schema

// SiteVisitorsKey is the site_content row holding the running visit total
const SiteVisitorsKey = "site_visitors"

// TableDefinitions contains all the SQL statements to create the database tables
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS site_content (
		key VARCHAR(100) PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS site_content_items (
		content_key VARCHAR(100) NOT NULL,
		collection VARCHAR(50) NOT NULL,
		position INTEGER NOT NULL,
		item JSONB NOT NULL,
		PRIMARY KEY (content_key, collection, position)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 99
	)`,
	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		spicy_level INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		date VARCHAR(20) NOT NULL,
		time VARCHAR(20) NOT NULL,
		guests INTEGER NOT NULL,
		special_requests TEXT NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		subject VARCHAR(255) NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'unread',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'admin',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id UUID PRIMARY KEY,
		filename VARCHAR(255) NOT NULL,
		mimetype VARCHAR(100) NOT NULL,
		size BIGINT NOT NULL,
		data TEXT NOT NULL DEFAULT '',
		object_key VARCHAR(255) NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS visitor_logs (
		id UUID PRIMARY KEY,
		user_agent TEXT NOT NULL DEFAULT '',
		browser VARCHAR(100) NOT NULL,
		device_type VARCHAR(50) NOT NULL,
		os VARCHAR(100) NOT NULL,
		visited_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_visitors (
		date DATE PRIMARY KEY,
		count BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_created_at ON reservations(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_visitor_logs_visited_at ON visitor_logs(visited_at DESC)`,
	TrackVisitFunction,
}

// TrackVisitFunction appends the log, bumps the day bucket and the running
// total, and returns the new total, all inside the caller's statement
const TrackVisitFunction = `CREATE OR REPLACE FUNCTION track_visit(
	p_id UUID,
	p_user_agent TEXT,
	p_browser TEXT,
	p_device_type TEXT,
	p_os TEXT,
	p_visited_at TIMESTAMPTZ,
	p_day DATE
) RETURNS BIGINT AS $$
DECLARE
	new_total BIGINT;
BEGIN
	INSERT INTO visitor_logs (id, user_agent, browser, device_type, os, visited_at)
	VALUES (p_id, p_user_agent, p_browser, p_device_type, p_os, p_visited_at);

	INSERT INTO daily_visitors (date, count) VALUES (p_day, 1)
	ON CONFLICT (date) DO UPDATE SET count = daily_visitors.count + 1;

	INSERT INTO site_content (key, value, updated_at)
	VALUES ('site_visitors', '{"count": 1}'::jsonb, NOW())
	ON CONFLICT (key) DO UPDATE SET
		value = jsonb_build_object('count', COALESCE((site_content.value->>'count')::BIGINT, 0) + 1),
		updated_at = NOW()
	RETURNING (value->>'count')::BIGINT INTO new_total;

	RETURN new_total;
END;
$$ LANGUAGE plpgsql`

// TableNames lists tables in creation order
var TableNames = []string{
	"site_content",
	"site_content_items",
	"categories",
	"menu_items",
	"reservations",
	"contact_messages",
	"users",
	"images",
	"visitor_logs",
	"daily_visitors",
}
