package database

const schema = `
CREATE TABLE IF NOT EXISTS app_user (
    id            TEXT PRIMARY KEY,
    name          TEXT        NOT NULL,
    username      TEXT        NOT NULL DEFAULT '',
    email         TEXT        NOT NULL DEFAULT '',
    is_active     BOOLEAN     NOT NULL DEFAULT TRUE,
    role          TEXT        NOT NULL,
    password_hash BYTEA       NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL,
    last_login    TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
);

CREATE UNIQUE INDEX IF NOT EXISTS app_user_username_idx ON app_user (username) WHERE username <> '';
CREATE UNIQUE INDEX IF NOT EXISTS app_user_email_idx ON app_user (email) WHERE email <> '';

CREATE TABLE IF NOT EXISTS policy_assessment (
    id             TEXT PRIMARY KEY,
    scope_level    TEXT        NOT NULL,
    scope_ref      TEXT        NOT NULL DEFAULT '',
    assessor_name  TEXT        NOT NULL,
    assessor_role  TEXT        NOT NULL DEFAULT '',
    assessor_email TEXT        NOT NULL,
    date           TIMESTAMPTZ NOT NULL,
    themes         JSONB       NOT NULL,
    cross_cutting  JSONB       NOT NULL,
    overall_score  INTEGER     NOT NULL,
    overall_stage  TEXT        NOT NULL,
    status         TEXT        NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS policy_assessment_date_idx ON policy_assessment (date);
CREATE INDEX IF NOT EXISTS policy_assessment_status_idx ON policy_assessment (status);
`
