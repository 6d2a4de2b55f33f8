package sqlinline

const QInsertUser = `--sql 78f9d651-365c-44a2-b080-c91f695f2185
insert into users(id, email, password_hash, locale, country, plan, quota_daily, quota_used_today, created_at, updated_at)
values (gen_random_uuid(), lower($1::text), $2::text, $3::text, nullif($4::text, ''), 'free', $5::int, 0, now(), now())
on conflict (email) do nothing
returning id, plan;
`

const QSelectUserByEmail = `--sql 28d24910-eaaa-4f63-9578-49c908fef4e3
select id, email, password_hash, locale, plan, quota_daily, quota_used_today
from users
where email = lower($1::text)
limit 1;
`

const QSelectUserByID = `--sql 442fb083-d9d3-4726-aa75-daae813ce15a
select id, email, locale, plan, quota_daily, quota_used_today, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

const QUpdateUserPlan = `--sql 12145178-09a8-41b7-99f9-3687a74a152c
update users
set plan = $2::text, quota_daily = $3::int, updated_at = now()
where id = $1::uuid
returning id;
`
