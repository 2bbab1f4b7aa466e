package commands

import (
	"fmt"
	"log"

	"github.com/GabrielArdy/sigap-backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('EMPLOYEE', 'ADMIN', 'STATION');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            user_id varchar(64) not null unique,
            first_name text not null,
            last_name text,
            email varchar(255) not null,
            nip varchar(64),
            position text,
            password text not null,
            role user_role not null,
            created_at timestamp default now(),
            created_by varchar(64),
            updated_at timestamp,
            updated_by varchar(64),
            deleted_at timestamp,
            deleted_by varchar(64)
        );`,
	},
	{
		Index:       3,
		Description: "Create admin with email: admin@sigap.local, password: admin123",
		Query: `
        INSERT INTO users(user_id, first_name, email, role, password)
        SELECT 'a0000000-0000-0000-0000-000000000001', 'Admin', 'admin@sigap.local', 'ADMIN',
            '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT email FROM users WHERE email = 'admin@sigap.local');
        `,
	},
	{
		Index:       4,
		Description: "Create table: stations.",
		Query: `
        CREATE TABLE IF NOT EXISTS stations (
            id serial primary key,
            station_id varchar(64) not null,
            station_name text not null,
            latitude float not null,
            longitude float not null,
            radius_threshold float not null,
            station_status varchar(16) default 'offline',
            last_active timestamp,
            created_at timestamp default now(),
            created_by varchar(64),
            updated_at timestamp,
            updated_by varchar(64),
            deleted_at timestamp,
            deleted_by varchar(64)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: attendance with one record per user and day.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            attendance_id varchar(64) not null,
            user_id varchar(64) not null,
            work_day date not null,
            check_in timestamp,
            check_out timestamp,
            attendance_status varchar(4),
            station_id varchar(64),
            created_at timestamp default now(),
            created_by varchar(64),
            updated_at timestamp,
            updated_by varchar(64),
            deleted_at timestamp,
            deleted_by varchar(64),
            CONSTRAINT attendance_user_day_unique UNIQUE (user_id, work_day)
        );`,
	},
	{
		Index:       6,
		Description: "Create table: qr_audit.",
		Query: `
        CREATE TABLE IF NOT EXISTS qr_audit (
            id serial primary key,
            qr_id varchar(64) not null,
            qr_image text,
            qr_token text not null,
            expired_at timestamp not null,
            station_id varchar(64) not null,
            created_at timestamp default now(),
            created_by varchar(64),
            updated_at timestamp,
            updated_by varchar(64),
            deleted_at timestamp,
            deleted_by varchar(64)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: leave_requests.",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_requests (
            id serial primary key,
            request_id varchar(64) not null,
            request_type varchar(16) not null,
            requester_id varchar(64) not null,
            requested_start_date date not null,
            requested_end_date date not null,
            description text,
            attachment text,
            approval_status varchar(16) default 'pending',
            approver_id varchar(64),
            approver_comment text,
            created_at timestamp default now(),
            created_by varchar(64),
            updated_at timestamp,
            updated_by varchar(64),
            deleted_at timestamp,
            deleted_by varchar(64)
        );`,
	},
	{
		Index:       8,
		Description: "Index attendance lookups by work_day.",
		Query: `
        CREATE INDEX IF NOT EXISTS attendance_work_day_idx ON attendance (work_day);`,
	},
	{
		Index:       9,
		Description: "Index qr_audit lookups by station.",
		Query: `
        CREATE INDEX IF NOT EXISTS qr_audit_station_idx ON qr_audit (station_id, created_at);`,
	},
}

// MigrateUP applies the scheme entries newer than the recorded version,
// marking the schema dirty when one fails part way.
func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
